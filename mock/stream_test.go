package mock_test

import (
	"errors"
	"io"
	"testing"

	"github.com/fwojciec/uistream"
	"github.com/fwojciec/uistream/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventStream_Next(t *testing.T) {
	t.Parallel()
	t.Run("delegates to NextFn", func(t *testing.T) {
		t.Parallel()
		want := uistream.Event{Data: `{"type":"finish"}`}
		s := mock.EventStream{
			NextFn: func() (uistream.Event, error) {
				return want, nil
			},
		}
		got, err := s.Next()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("panics when NextFn not set", func(t *testing.T) {
		t.Parallel()
		s := mock.EventStream{}
		assert.Panics(t, func() {
			_, _ = s.Next()
		})
	})
}

func TestEventStream_Close(t *testing.T) {
	t.Parallel()
	t.Run("nil CloseFn returns nil", func(t *testing.T) {
		t.Parallel()
		s := mock.EventStream{}
		assert.NoError(t, s.Close())
	})

	t.Run("delegates to CloseFn", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("close failed")
		s := mock.EventStream{CloseFn: func() error { return wantErr }}
		assert.ErrorIs(t, s.Close(), wantErr)
	})
}

func TestNewEventStream(t *testing.T) {
	t.Parallel()

	s := mock.NewEventStream("a", "b")

	got, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", got.Data)
	got, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, "b", got.Data)
	_, err = s.Next()
	assert.ErrorIs(t, err, io.EOF)
	_, err = s.Next()
	assert.ErrorIs(t, err, io.EOF)
}
