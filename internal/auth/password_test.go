package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("hunter22!")
	require.NoError(t, err)
	second, err := HashPassword("hunter22!")
	require.NoError(t, err)

	// Fresh salt per call, yet both verify against the same plaintext.
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword("hunter22!", first))
	assert.True(t, CheckPassword("hunter22!", second))
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	tests := []struct {
		name      string
		plaintext string
		hash      string
		want      bool
	}{
		{"matching password", "correct-horse", hash, true},
		{"wrong password", "battery-staple", hash, false},
		{"empty password", "", hash, false},
		{"malformed hash", "correct-horse", "not-a-bcrypt-hash", false},
		{"empty hash", "correct-horse", "", false},
		{"plaintext stored as hash", "correct-horse", "correct-horse", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPassword(tt.plaintext, tt.hash))
		})
	}
}

func TestIsBcryptHash(t *testing.T) {
	hash, err := HashPassword("some-password")
	require.NoError(t, err)

	assert.True(t, IsBcryptHash(hash))
	assert.True(t, IsBcryptHash("$2a$10$abcdefghijklmnopqrstuv"))
	assert.False(t, IsBcryptHash("plaintext-password"))
	assert.False(t, IsBcryptHash(""))
	assert.False(t, IsBcryptHash("$1$old-md5-crypt"))
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "te***@example.com", MaskEmail("tecnico@example.com"))
	assert.Equal(t, "***@example.com", MaskEmail("a@example.com"))
	assert.Equal(t, "***", MaskEmail("not-an-email"))
}
