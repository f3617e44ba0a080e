package token

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_LengthAndEncoding(t *testing.T) {
	tok := New()
	assert.Len(t, tok, 64)
	_, err := hex.DecodeString(tok)
	assert.NoError(t, err)
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok := New()
		assert.False(t, seen[tok], "token repeated")
		seen[tok] = true
	}
}
