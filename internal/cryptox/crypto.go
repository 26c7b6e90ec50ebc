// Package cryptox implements the symmetric, authenticated file encryption used
// by dataprotect.
//
// A sealed blob is laid out as
//
//	version (1 byte) || nonce || ciphertext+tag
//
// where the version byte names the AEAD suite. A fresh random nonce is drawn
// for every Seal, so the same key may encrypt many times, although
// dataprotect only ever uses a key once.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/utilitybox/internal/common"
	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the length of every generated key (AES-256 / XChaCha20).
const KeySize = 32

// Suite names an AEAD construction.
type Suite string

const (
	SuiteAESGCM            Suite = "aes-gcm"
	SuiteXChaCha20Poly1305 Suite = "xchacha20poly1305"
)

const (
	versionAESGCM    byte = 1
	versionXChaCha20 byte = 2
)

// ParseSuite maps a configuration value to a Suite. Empty selects AES-GCM.
func ParseSuite(s string) (Suite, error) {
	switch Suite(strings.ToLower(strings.TrimSpace(s))) {
	case "", SuiteAESGCM:
		return SuiteAESGCM, nil
	case SuiteXChaCha20Poly1305:
		return SuiteXChaCha20Poly1305, nil
	default:
		return "", fmt.Errorf("unknown cipher suite %q", s)
	}
}

// GenerateKey returns a new random KeySize-byte key.
func GenerateKey() []byte {
	return common.GenerateRandByteArray(KeySize)
}

// EncodeKey renders key the way it is stored in a .key file.
func EncodeKey(key []byte) []byte {
	out := make([]byte, base64.URLEncoding.EncodedLen(len(key)))
	base64.URLEncoding.Encode(out, key)
	return out
}

// DecodeKey parses the content of a .key file. Surrounding whitespace is
// ignored.
func DecodeKey(data []byte) ([]byte, error) {
	s := strings.TrimSpace(string(data))
	key, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode key: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("decode key: want %d bytes, got %d", KeySize, len(key))
	}
	return key, nil
}

func newAEAD(version byte, key []byte) (cipher.AEAD, error) {
	switch version {
	case versionAESGCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	case versionXChaCha20:
		return chacha20poly1305.NewX(key)
	default:
		return nil, fmt.Errorf("unknown blob version %d", version)
	}
}

func suiteVersion(s Suite) (byte, error) {
	switch s {
	case SuiteAESGCM, "":
		return versionAESGCM, nil
	case SuiteXChaCha20Poly1305:
		return versionXChaCha20, nil
	default:
		return 0, fmt.Errorf("unknown cipher suite %q", s)
	}
}

// Seal encrypts plaintext with key under suite.
func Seal(suite Suite, key, plaintext []byte) ([]byte, error) {
	version, err := suiteVersion(suite)
	if err != nil {
		return nil, err
	}
	aead, err := newAEAD(version, key)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(aead.NonceSize())

	out := make([]byte, 0, 1+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, version)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, nil), nil
}

// Open authenticates and decrypts a blob produced by Seal. A wrong key, a
// modified blob, a truncated blob or an unknown version byte all return an
// error wrapping common.ErrCryptoIntegrity.
func Open(key, blob []byte) ([]byte, error) {
	if len(blob) < 1 {
		return nil, fmt.Errorf("%w: empty ciphertext", common.ErrCryptoIntegrity)
	}
	aead, err := newAEAD(blob[0], key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCryptoIntegrity, err)
	}

	body := blob[1:]
	if len(body) < aead.NonceSize()+aead.Overhead() {
		return nil, fmt.Errorf("%w: ciphertext too short", common.ErrCryptoIntegrity)
	}
	nonce, ct := body[:aead.NonceSize()], body[aead.NonceSize():]

	plaintext, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCryptoIntegrity, err)
	}
	return plaintext, nil
}
