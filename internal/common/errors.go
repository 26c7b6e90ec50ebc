// Package common defines shared sentinel errors and small helpers used across
// the utilitybox packages. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Validation errors.
	ErrPathNotFound = errors.New("path not found")

	// Filesystem errors raised while a batch is in progress.
	ErrIOFailure = errors.New("io failure")

	// Archive errors.
	ErrArchiveTool       = errors.New("archive tool failure")
	ErrUnsupportedFormat = errors.New("unsupported archive format")

	// Key / crypto errors.
	ErrCryptoIntegrity = errors.New("ciphertext failed authentication")
	ErrKeyNotFound     = errors.New("key not found")
	ErrKeyExists       = errors.New("key already exists")
)
