// Package models defines the records persisted by the utilitybox CLI.
package models

import "time"

// Operation is one journaled run of a user-facing operation.
type Operation struct {
	// Id is the op_id also attached to the diagnostic log lines.
	Id string

	// Operation is the category name, e.g. "Sort".
	Operation string

	// Status is the HTTP-like result code (200, 204, 404, 500).
	Status int

	// Affected counts the files touched (found, moved, deleted, archived...).
	Affected int

	// Target is the directory or file the operation ran on.
	Target string

	CreatedAt time.Time
}
