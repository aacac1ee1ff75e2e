package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidAccountID(t *testing.T) {
	valid := []string{
		"alice",
		"ab",
		"alice.near",
		"token-registry.near",
		"sub.token_registry.near",
		"a1b2c3",
		"ok_account",
		strings.Repeat("a", 64),
	}
	for _, id := range valid {
		assert.True(t, ValidAccountID(id), "expected valid: %q", id)
	}

	invalid := []string{
		"",
		"a",
		"Alice",
		"alice near",
		"alice..near",
		"-alice",
		"alice-",
		"alice_",
		".alice",
		"alice.",
		"ali--ce",
		"ali@ce",
		strings.Repeat("a", 65),
	}
	for _, id := range invalid {
		assert.False(t, ValidAccountID(id), "expected invalid: %q", id)
	}
}
