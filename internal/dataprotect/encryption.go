package dataprotect

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/utilitybox/internal/common"
	"github.com/dmitrijs2005/utilitybox/internal/cryptox"
	"github.com/dmitrijs2005/utilitybox/internal/filex"
)

type Encryptor struct {
	filePath string
	keysDir  string
	suite    cryptox.Suite
	pairs    map[string]string
}

func NewEncryptor(filePath, keysDir string, suite cryptox.Suite) *Encryptor {
	return &Encryptor{
		filePath: filePath,
		keysDir:  keysDir,
		suite:    suite,
		pairs:    make(map[string]string),
	}
}

// Pairs maps the encrypted file's base name to its key path.
func (e *Encryptor) Pairs() map[string]string {
	return e.pairs
}

// GenerateKey creates a fresh key and stores it at KeyPath. An existing key
// for the same base name is never overwritten: it may be the only way to
// decrypt an earlier file.
func (e *Encryptor) GenerateKey() error {
	if _, err := filex.EnsureDir(e.keysDir); err != nil {
		return fmt.Errorf("%w: %v", common.ErrIOFailure, err)
	}

	path := KeyPath(e.keysDir, e.filePath)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", common.ErrKeyExists, path)
	}
	if err != nil {
		return fmt.Errorf("%w: create key %s: %v", common.ErrIOFailure, path, err)
	}

	key := cryptox.GenerateKey()
	defer common.WipeByteArray(key)

	if _, err := f.Write(cryptox.EncodeKey(key)); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("%w: write key %s: %v", common.ErrIOFailure, path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("%w: write key %s: %v", common.ErrIOFailure, path, err)
	}

	e.pairs[baseName(e.filePath)] = path
	return nil
}

// LoadKey reads back the key written by GenerateKey.
func (e *Encryptor) LoadKey() ([]byte, error) {
	return readKey(KeyPath(e.keysDir, e.filePath))
}

// EncryptFile replaces the target's content with its ciphertext.
func (e *Encryptor) EncryptFile(key []byte) error {
	plaintext, err := os.ReadFile(e.filePath)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", common.ErrIOFailure, e.filePath, err)
	}
	defer common.WipeByteArray(plaintext)

	blob, err := cryptox.Seal(e.suite, key, plaintext)
	if err != nil {
		return fmt.Errorf("encrypt %s: %w", e.filePath, err)
	}
	if err := filex.WriteFileAtomic(e.filePath, blob); err != nil {
		return fmt.Errorf("%w: write %s: %v", common.ErrIOFailure, e.filePath, err)
	}
	return nil
}

// Discard removes a key created by GenerateKey whose encryption did not go
// through, and forgets the pair.
func (e *Encryptor) Discard() error {
	path := KeyPath(e.keysDir, e.filePath)
	delete(e.pairs, baseName(e.filePath))
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: remove key %s: %v", common.ErrIOFailure, path, err)
	}
	return nil
}

func readKey(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", common.ErrKeyNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read key %s: %v", common.ErrIOFailure, path, err)
	}
	key, err := cryptox.DecodeKey(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrCryptoIntegrity, path, err)
	}
	return key, nil
}
