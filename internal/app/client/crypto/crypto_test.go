package crypto

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext []byte
	}{
		{name: "text", plaintext: []byte("the vault code is 4242")},
		{name: "unicode", plaintext: []byte("пароль: секрет ✓")},
		{name: "binary", plaintext: []byte{0x00, 0xff, 0x10, 0x80, 0x7f}},
		{name: "empty", plaintext: []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sealed, err := Encrypt(tt.plaintext, "s3cr3t")
			require.NoError(t, err)

			opened, err := Decrypt(sealed, "s3cr3t")
			require.NoError(t, err)
			assert.Equal(t, len(tt.plaintext), len(opened))
			if len(tt.plaintext) > 0 {
				assert.Equal(t, tt.plaintext, opened)
			}
		})
	}
}

func TestEncrypt_FreshSaltAndNonce(t *testing.T) {
	a, err := Encrypt([]byte("same"), "pw")
	require.NoError(t, err)
	b, err := Encrypt([]byte("same"), "pw")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDecrypt_Failures(t *testing.T) {
	sealed, err := Encrypt([]byte("payload"), "right")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0x01
	tampered := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name     string
		content  string
		password string
	}{
		{name: "wrong password", content: sealed, password: "wrong"},
		{name: "tampered", content: tampered, password: "right"},
		{name: "not base64", content: "%%%", password: "right"},
		{name: "too short", content: base64.StdEncoding.EncodeToString([]byte("short")), password: "right"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt(tt.content, tt.password)
			assert.ErrorIs(t, err, ErrDecrypt)
		})
	}
}

func TestEmptyPassword(t *testing.T) {
	_, err := Encrypt([]byte("x"), "")
	assert.ErrorIs(t, err, ErrEmptyPassword)

	_, err = Decrypt("AAAA", "")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestGeneratePassword(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		pw, err := GeneratePassword(DefaultPasswordLength)
		require.NoError(t, err)
		assert.Len(t, pw, DefaultPasswordLength)
		assert.NotContains(t, pw, ":")
		for _, r := range pw {
			assert.True(t, strings.ContainsRune(passwordAlphabet, r))
		}
		seen[pw] = true
	}
	assert.Len(t, seen, 50)

	_, err := GeneratePassword(0)
	assert.Error(t, err)
}

func TestClearMemory(t *testing.T) {
	b := []byte{1, 2, 3}
	ClearMemory(b)
	assert.Equal(t, []byte{0, 0, 0}, b)
}
