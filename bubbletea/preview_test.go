package bubbletea_test

import (
	"testing"

	bt "github.com/fwojciec/uistream/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestPreview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "fits", in: "short", width: 10, want: "short"},
		{name: "first line only", in: "one\ntwo", width: 10, want: "one"},
		{name: "truncated", in: "abcdefghij", width: 5, want: "abcd…"},
		{name: "wide runes", in: "日本語テキスト", width: 7, want: "日本語…"},
		{name: "combining marks stay attached", in: "e\u0301e\u0301e\u0301e\u0301", width: 3, want: "e\u0301e\u0301…"},
		{name: "zero width", in: "abc", width: 0, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, bt.Preview(tt.in, tt.width))
		})
	}
}
