package uistream_test

import (
	"testing"

	"github.com/fwojciec/uistream"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTheme(t *testing.T) {
	t.Parallel()

	theme := uistream.DefaultTheme()

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"user", theme.UserMsg, 4},
		{"reasoning", theme.Reasoning, 8},
		{"tool", theme.ToolCall, 3},
		{"error", theme.Error, 1},
		{"success", theme.Success, 2},
		{"muted", theme.Muted, 8},
		{"code", theme.CodeBg, 0},
		{"accent", theme.Accent, 5},
		{"source", theme.Source, 6},
		{"file", theme.File, 12},
		{"data", theme.Data, 13},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.got, tt.name)
	}
}

func TestDefaultTheme_ReferencePartsAreDistinct(t *testing.T) {
	t.Parallel()

	theme := uistream.DefaultTheme()
	colors := map[int]string{}
	for name, c := range map[string]int{"source": theme.Source, "file": theme.File, "data": theme.Data} {
		if other, ok := colors[c]; ok {
			t.Fatalf("%s and %s share color %d", name, other, c)
		}
		colors[c] = name
	}
	for _, c := range []int{theme.Source, theme.File, theme.Data} {
		assert.GreaterOrEqual(t, c, 0)
		assert.LessOrEqual(t, c, 15)
	}
}
