package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"punctuation and digits", "Hello, World! 2024", "hello-world-2024"},
		{"leading and trailing separators", "  --Foo--  ", "foo"},
		{"already clean", "portfolio", "portfolio"},
		{"uppercase", "My Project", "my-project"},
		{"run of mixed separators", "a __ b", "a-b"},
		{"non-ascii collapses", "café crème", "caf-cr-me"},
		{"empty", "", ""},
		{"only separators", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, GenerateSlug(tt.title))
		})
	}
}
