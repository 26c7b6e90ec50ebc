package services

import (
	"github.com/dmitrijs2005/utilitybox/internal/oplog"
)

// ResultSink receives the condensed status line of every operation.
type ResultSink interface {
	Report(status oplog.Status, line string)
}

// SinkFunc adapts a plain function to ResultSink.
type SinkFunc func(status oplog.Status, line string)

func (f SinkFunc) Report(status oplog.Status, line string) { f(status, line) }

// Outcome is what an operation did.
type Outcome struct {
	Id        string
	Operation oplog.Category
	Status    oplog.Status

	// Files lists the affected paths: found, moved, deleted, archived,
	// encrypted or decrypted.
	Files []string

	// Pairs maps file base names to key paths for encrypt/decrypt.
	Pairs map[string]string

	// Destination is the archive written by Compress or the folder
	// Decompress extracted into.
	Destination string

	// Remote is the uploaded object's URI when archive upload is enabled.
	Remote string

	// Err explains a 404/500 status, or a partial failure of a batch that
	// still affected some files.
	Err error
}
