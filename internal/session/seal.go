package session

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const sealInfo = "blogger session entry v1"

// SealedStore encrypts every value with XChaCha20-Poly1305 before handing
// it to the wrapped Store. The entry key is bound as associated data so a
// value cannot be moved to another slot.
//
// Stored format: base64(nonce || ciphertext || tag).
type SealedStore struct {
	inner Store
	aead  cipher.AEAD
}

// NewSealedStore derives a 256-bit key from secret with HKDF-SHA256.
func NewSealedStore(inner Store, secret []byte) (*SealedStore, error) {
	if len(secret) == 0 {
		return nil, errors.New("session: empty sealing secret")
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(sealInfo)), key); err != nil {
		return nil, fmt.Errorf("session: derive key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("session: create cipher: %w", err)
	}

	return &SealedStore{inner: inner, aead: aead}, nil
}

func (s *SealedStore) Set(ctx context.Context, key, value string) error {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("session: generate nonce: %w", err)
	}

	sealed := s.aead.Seal(nonce, nonce, []byte(value), []byte(key))
	return s.inner.Set(ctx, key, base64.StdEncoding.EncodeToString(sealed))
}

// Get opens the stored value. An entry that cannot be opened (written
// without sealing, or under another secret) is deleted and reported as
// ErrNotFound.
func (s *SealedStore) Get(ctx context.Context, key string) (string, error) {
	raw, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}

	plain, err := s.open(key, raw)
	if err != nil {
		_ = s.inner.Delete(ctx, key)
		return "", ErrNotFound
	}
	return string(plain), nil
}

func (s *SealedStore) open(key, raw string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, err
	}

	nonceSize := s.aead.NonceSize()
	if len(data) < nonceSize {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	return s.aead.Open(nil, nonce, ciphertext, []byte(key))
}

func (s *SealedStore) Delete(ctx context.Context, keys ...string) error {
	return s.inner.Delete(ctx, keys...)
}

func (s *SealedStore) Close() error { return s.inner.Close() }
