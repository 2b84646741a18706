package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		errMsg   string
		wantErr  bool
	}{
		{name: "successful hash", password: "secret123"},
		{name: "empty password", password: "", wantErr: true, errMsg: "password cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPasswordCost(tt.password, bcrypt.MinCost)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)
			assert.NoError(t, VerifyPassword(tt.password, hash))
		})
	}
}

func TestHashPassword_Salted(t *testing.T) {
	h1, err := HashPasswordCost("secret123", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPasswordCost("secret123", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestHashPassword_DefaultCost(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPasswordCost("secret123", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, VerifyPassword("secret123", hash))
	assert.ErrorIs(t, VerifyPassword("wrong", hash), ErrPasswordMismatch)
	assert.ErrorContains(t, VerifyPassword("secret123", ""), "password hash cannot be empty")

	err = VerifyPassword("secret123", "not-a-bcrypt-hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken()
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, raw, TokenSize)

	other, err := GenerateToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestHashToken(t *testing.T) {
	// SHA256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", HashToken("abc"))
	assert.Equal(t, HashToken("token"), HashToken("token"))
	assert.NotEqual(t, HashToken("a"), HashToken("b"))
}
