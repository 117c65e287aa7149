package database

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
)

// Cipher wraps event payloads before they hit the database. The store
// itself never inspects payload bytes, so encryption stays transparent to
// the scheduling core.
type Cipher interface {
	Seal(plain []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// NewCipher returns an AES-256-GCM cipher derived from the passphrase, or
// a pass-through when the passphrase is empty (encryption disabled).
func NewCipher(passphrase string) (Cipher, error) {
	if passphrase == "" {
		return noopCipher{}, nil
	}
	key := sha256.Sum256([]byte(passphrase))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("cipher init: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher init: %w", err)
	}
	return &aesCipher{aead: aead}, nil
}

type aesCipher struct {
	aead cipher.AEAD
}

// Seal prepends the random nonce to the ciphertext.
func (c *aesCipher) Seal(plain []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}
	return c.aead.Seal(nonce, nonce, plain, nil), nil
}

func (c *aesCipher) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < c.aead.NonceSize() {
		return nil, fmt.Errorf("sealed payload too short (%d bytes)", len(sealed))
	}
	nonce, ciphertext := sealed[:c.aead.NonceSize()], sealed[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt payload: %w", err)
	}
	return plain, nil
}

type noopCipher struct{}

func (noopCipher) Seal(plain []byte) ([]byte, error)  { return plain, nil }
func (noopCipher) Open(sealed []byte) ([]byte, error) { return sealed, nil }
