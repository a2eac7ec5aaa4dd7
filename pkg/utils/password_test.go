package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	h := HashPassword("correct horse")
	require.NotEmpty(t, h)
	assert.NotEqual(t, "correct horse", h)
	assert.True(t, CheckPassword("correct horse", h))
	assert.False(t, CheckPassword("wrong", h))
}

func TestEdgeCases(t *testing.T) {
	assert.Empty(t, HashPassword(strings.Repeat("x", 73)))
	assert.False(t, CheckPassword("", ""))
	assert.False(t, CheckPassword("anything", ""))
}
