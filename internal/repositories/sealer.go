package repositories

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const sealerInfo = "wallet-mediator tenant store v1"

var errShortCiphertext = errors.New("sealed value too short")

// Sealer encrypts stored values with XChaCha20-Poly1305.
// The key is derived from the configured secret, the entry coordinates are bound as additional data.
type Sealer struct {
	key []byte
}

// NewSealer derives the value encryption key from secret
func NewSealer(secret string) (*Sealer, error) {
	if secret == "" {
		return nil, errors.New("empty storage secret")
	}
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(sealerInfo)), key); err != nil {
		return nil, err
	}
	return &Sealer{key: key}, nil
}

// Seal encrypts plaintext. The nonce is prepended to the result.
func (s *Sealer) Seal(plaintext, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plaintext, aad), nil
}

// Open decrypts a value produced by Seal with the same additional data
func (s *Sealer) Open(sealed, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, err
	}
	if len(sealed) < aead.NonceSize()+aead.Overhead() {
		return nil, errShortCiphertext
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, aad)
}
