package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// printFn writes the prompt; a test seam like printlnFn.
var printFn = fmt.Print

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Search(ctx context.Context) error
	Sort(ctx context.Context) error
	Delete(ctx context.Context) error
	Compress(ctx context.Context) error
	Decompress(ctx context.Context) error
	Encrypt(ctx context.Context) error
	Decrypt(ctx context.Context) error
	History(ctx context.Context) error
}

const helpText = "Available commands: search, sort, delete, compress, decompress, encrypt, decrypt, history, exit"

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF, when the user types "exit" or "quit", or when ctx
// is cancelled.
//
// Handler errors are reported to the user and otherwise ignored; every
// operation already logs and reports its own outcome.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printFn("utilitybox> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText)

		case "search":
			cmdErr = a.Search(ctx)

		case "sort":
			cmdErr = a.Sort(ctx)

		case "delete":
			cmdErr = a.Delete(ctx)

		case "compress":
			cmdErr = a.Compress(ctx)

		case "decompress":
			cmdErr = a.Decompress(ctx)

		case "encrypt":
			cmdErr = a.Encrypt(ctx)

		case "decrypt":
			cmdErr = a.Decrypt(ctx)

		case "history":
			cmdErr = a.History(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
