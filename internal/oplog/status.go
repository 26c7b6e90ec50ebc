// Package oplog formats the per-operation result messages and appends them to
// the dated plain-text operation log.
package oplog

import "strings"

// Status is the HTTP-like outcome code of an operation.
type Status int

const (
	StatusOK        Status = 200
	StatusNoContent Status = 204
	StatusBadPath   Status = 404
	StatusFailed    Status = 500
)

// Color is the display color of the status line.
func (s Status) Color() string {
	switch s {
	case StatusOK:
		return "#009137"
	case StatusNoContent:
		return "#006571"
	default:
		return "#912800"
	}
}

// Success reports whether the operation completed, with or without changes.
func (s Status) Success() bool {
	return s == StatusOK || s == StatusNoContent
}

// StatusFor is OK when anything was affected and NoContent otherwise.
func StatusFor(affected int) Status {
	if affected > 0 {
		return StatusOK
	}
	return StatusNoContent
}

// Category names both an operation and its log sub-folder.
type Category string

const (
	Search     Category = "Search"
	Sort       Category = "Sort"
	Delete     Category = "Delete"
	Encryption Category = "Encryption"
	Decryption Category = "Decryption"
	Compress   Category = "Compress"
	Decompress Category = "Decompress"
)

// Categories lists every category in display order.
var Categories = []Category{Search, Sort, Delete, Encryption, Decryption, Compress, Decompress}

// Op is the upper-cased identifier printed inside the brackets.
func (c Category) Op() string {
	return strings.ToUpper(string(c))
}
