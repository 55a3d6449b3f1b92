package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	cases := map[string]bool{
		"abc":         false,
		"abcdefgh":    false,
		"12345678":    false,
		"rahasia123":  true,
		"Bismillah1!": true,
	}
	for pw, ok := range cases {
		err := ValidatePassword(pw)
		if ok {
			assert.NoError(t, err, pw)
		} else {
			assert.ErrorIs(t, err, ErrWeakPassword, pw)
		}
	}
}

func TestHashAndCheck(t *testing.T) {
	h, err := HashPassword("rahasia123")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", h)
	assert.NoError(t, CheckPasswordHash(h, "rahasia123"))
	assert.Error(t, CheckPasswordHash(h, "salah1234"))
}
