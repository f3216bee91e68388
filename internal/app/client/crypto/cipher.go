// Package crypto encrypts secrets on the sender's device. The key is derived
// from the link password, so the server only ever sees ciphertext.
//
// Envelope: base64(salt | nonce | AES-256-GCM ciphertext), salt 16 bytes,
// key = PBKDF2-SHA256(password, salt, 100000 iterations).
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 100000
	pbkdf2KeyLength  = 32
	pbkdf2SaltLength = 16
)

var (
	ErrEmptyPassword = errors.New("password must not be empty")
	// ErrDecrypt covers both a wrong password and tampered ciphertext; GCM cannot tell them apart.
	ErrDecrypt = errors.New("cannot decrypt secret")
)

// Encrypt seals plaintext with a key derived from password.
func Encrypt(plaintext []byte, password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt, err := GenerateRandomBytes(pbkdf2SaltLength)
	if err != nil {
		return "", err
	}

	key := deriveKey(password, salt)
	defer ClearMemory(key)

	sealed, err := encryptWithKey(key, plaintext)
	if err != nil {
		return "", err
	}

	envelope := make([]byte, 0, len(salt)+len(sealed))
	envelope = append(envelope, salt...)
	envelope = append(envelope, sealed...)

	return base64.StdEncoding.EncodeToString(envelope), nil
}

// Decrypt opens an envelope produced by Encrypt.
func Decrypt(content, password string) ([]byte, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}

	envelope, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed envelope: %v", ErrDecrypt, err)
	}
	if len(envelope) < pbkdf2SaltLength {
		return nil, fmt.Errorf("%w: envelope too short", ErrDecrypt)
	}

	salt, sealed := envelope[:pbkdf2SaltLength], envelope[pbkdf2SaltLength:]

	key := deriveKey(password, salt)
	defer ClearMemory(key)

	return decryptWithKey(key, sealed)
}

func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, pbkdf2KeyLength, sha256.New)
}

func encryptWithKey(key, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithKey(key, sealed []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(sealed) < nonceSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecrypt
	}

	return plaintext, nil
}
