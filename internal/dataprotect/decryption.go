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

type Decryptor struct {
	filePath string
	keysDir  string
	pairs    map[string]string
}

func NewDecryptor(filePath, keysDir string) *Decryptor {
	return &Decryptor{
		filePath: filePath,
		keysDir:  keysDir,
		pairs:    make(map[string]string),
	}
}

// Pairs maps the decrypted file's base name to the path its key was read
// from (and deleted at).
func (d *Decryptor) Pairs() map[string]string {
	return d.pairs
}

// LoadKey reads {keysDir}/{baseName}.key and records the pair.
func (d *Decryptor) LoadKey() ([]byte, error) {
	path := KeyPath(d.keysDir, d.filePath)
	key, err := readKey(path)
	if err != nil {
		return nil, err
	}
	d.pairs[baseName(d.filePath)] = path
	return key, nil
}

// DecryptFile authenticates and decrypts the target in place, then deletes
// the key. On any failure the target and the key are left untouched.
func (d *Decryptor) DecryptFile(key []byte) error {
	blob, err := os.ReadFile(d.filePath)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", common.ErrIOFailure, d.filePath, err)
	}

	plaintext, err := cryptox.Open(key, blob)
	if err != nil {
		return fmt.Errorf("decrypt %s: %w", d.filePath, err)
	}
	defer common.WipeByteArray(plaintext)

	if err := filex.WriteFileAtomic(d.filePath, plaintext); err != nil {
		return fmt.Errorf("%w: write %s: %v", common.ErrIOFailure, d.filePath, err)
	}
	return d.RemoveKey()
}

// RemoveKey deletes the key file for the target.
func (d *Decryptor) RemoveKey() error {
	path := KeyPath(d.keysDir, d.filePath)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: remove key %s: %v", common.ErrIOFailure, path, err)
	}
	return nil
}
