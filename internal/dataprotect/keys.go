// Package dataprotect encrypts and decrypts single files in place with a
// one-time key stored as {keysDir}/{baseName}.key.
//
// Keys are matched to files by base name only, so report.txt and report.pdf
// share a key slot and cannot be encrypted at the same time. Key creation and
// removal are not atomic with respect to a concurrent encrypt/decrypt of the
// same file.
package dataprotect

import (
	"path/filepath"

	"github.com/dmitrijs2005/utilitybox/internal/extx"
)

// KeyExt is the suffix of every key file.
const KeyExt = ".key"

// baseName is the target's file name without directory or extension.
func baseName(filePath string) string {
	return extx.Stem(filepath.Base(filePath))
}

// KeyPath returns where the key for filePath lives inside keysDir.
func KeyPath(keysDir, filePath string) string {
	return filepath.Join(keysDir, baseName(filePath)+KeyExt)
}
