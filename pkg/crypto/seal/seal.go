// Package seal provides authenticated encryption for credential files.
//
// Sealed payloads are ChaCha20-Poly1305 boxes with the random nonce
// prepended, tagged with a magic header so plaintext and sealed files can be
// told apart when reading.
package seal

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the required key length in bytes.
const KeySize = chacha20poly1305.KeySize

// magic identifies a sealed payload.
var magic = []byte("NPSEAL1\n")

// ErrKeySize indicates the key is not KeySize bytes.
var ErrKeySize = errors.New("seal: key must be 32 bytes")

// ErrNotSealed indicates the payload lacks the sealed-file header.
var ErrNotSealed = errors.New("seal: payload is not sealed")

// ParseKey decodes a hex-encoded 32-byte key.
func ParseKey(s string) ([]byte, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.New("seal: key must be hex encoded")
	}
	if len(key) != KeySize {
		return nil, ErrKeySize
	}
	return key, nil
}

// IsSealed reports whether the payload carries the sealed-file header.
func IsSealed(payload []byte) bool {
	return bytes.HasPrefix(payload, magic)
}

// Seal encrypts plaintext under key and wraps it with the sealed-file header.
func Seal(key, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, ErrKeySize
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	box := aead.Seal(nonce, nonce, plaintext, magic)
	return append(append([]byte(nil), magic...), box...), nil
}

// Open authenticates and decrypts a sealed payload.
func Open(key, payload []byte) ([]byte, error) {
	if !IsSealed(payload) {
		return nil, ErrNotSealed
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, ErrKeySize
	}

	box := payload[len(magic):]
	if len(box) < aead.NonceSize() {
		return nil, errors.New("seal: payload too short")
	}

	nonce, ciphertext := box[:aead.NonceSize()], box[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, magic)
}
