package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected Type
	}{
		{"true", TRUE},
		{"false", FALSE},
		{"null", NULL},
		{"myVal", IDENT},
		{"value_1", IDENT},
		{"sub-doc", IDENT},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, LookupIdent(tt.input))
			require.Equal(t, tt.expected != IDENT, IsKeyword(tt.input))
		})
	}
}

func TestTokenString(t *testing.T) {
	require.Equal(t, "{", Token{Type: LBRACE, Literal: "{"}.String())
	require.Equal(t, `STRING ("abc")`, Token{Type: STRING, Literal: "abc"}.String())
	require.Equal(t, "EOF", Token{Type: EOF}.String())
}
