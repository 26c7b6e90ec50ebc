package oplog

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dmitrijs2005/utilitybox/internal/extx"
)

func header(c Category, s Status) string {
	return fmt.Sprintf("[%s: %d]:", c.Op(), s)
}

// PathInvalid is logged when validation rejects the target path.
func PathInvalid(c Category, path string) string {
	if path == "" {
		path = "Empty path"
	}
	return header(c, StatusBadPath) + "\n\tInvalid path:\n\t\t" + path
}

func resultsKeyword(c Category) string {
	switch c {
	case Search:
		return "Found"
	case Sort:
		return "Sorted"
	default:
		return "Deleted"
	}
}

// BasicResults lists the files touched by search, sort or delete, grouped by
// extension.
func BasicResults(c Category, s Status, files extx.Grouped) string {
	var b strings.Builder
	b.WriteString(header(c, s))
	fmt.Fprintf(&b, "\n\t%s the following files:", resultsKeyword(c))

	if files.Len() == 0 {
		b.WriteString("\n\t\tNone")
		return b.String()
	}
	for _, ext := range files.Order {
		fmt.Fprintf(&b, "\n\t\tFiles of type: %s", ext)
		for _, f := range files.Files[ext] {
			fmt.Fprintf(&b, "\n\t\t\t%s", filepath.Base(f))
		}
	}
	return b.String()
}

func Compressed(s Status, destination string) string {
	return header(Compress, s) + "\n\tArchive created at the following location:\n\t\t" + destination
}

func Decompressed(s Status, destination string) string {
	return header(Decompress, s) + "\n\tDecompressed the files in following location:\n\t\t" + destination
}

func Encrypted(s Status, pairs map[string]string) string {
	return keyPairs(header(Encryption, s)+"\n\tEncrypted the following file:",
		"Key saved in the following location:", pairs)
}

func Decrypted(s Status, pairs map[string]string) string {
	return keyPairs(header(Decryption, s)+"\n\tDecrypted the following file:",
		"Key from the following location deleted:", pairs)
}

func keyPairs(head, keyLine string, pairs map[string]string) string {
	names := make([]string, 0, len(pairs))
	for n := range pairs {
		names = append(names, n)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(head)
	for _, n := range names {
		fmt.Fprintf(&b, "\n\t\t%s\n\t%s\n\t\t%s", n, keyLine, pairs[n])
	}
	return b.String()
}

// Failed records an operation that passed validation but could not finish.
func Failed(c Category, target string, err error) string {
	return fmt.Sprintf("%s\n\tOperation failed:\n\t\t%s\n\tReason:\n\t\t%v", header(c, StatusFailed), target, err)
}

// Short is the one-line status shown to the user.
func Short(c Category, s Status) string {
	switch s {
	case StatusOK:
		return fmt.Sprintf("[%s %d]: Success: changes performed", c.Op(), s)
	case StatusNoContent:
		return fmt.Sprintf("[%s %d]: Success: no changes performed", c.Op(), s)
	case StatusBadPath:
		return fmt.Sprintf("[%s: %d]: Failure: Invalid path", c.Op(), s)
	default:
		return fmt.Sprintf("[%s: %d]: Failure: operation failed", c.Op(), s)
	}
}
