// Package cli provides the interactive utilitybox command-line client.
//
// It wires configuration, the operation log, the optional history journal and
// S3 uploader, and an interactive REPL. Each command prompts for its inputs
// line by line and hands them to services.OperationService; the one-line
// result is printed by TerminalSink, colored when stdout is a terminal.
//
// Commands
//
//	search      find files by name and/or extension
//	sort        move files into sub-folders by extension or keyword
//	delete      remove files by extension or keyword
//	compress    build a zip or rar archive from a list of files
//	decompress  extract a zip or rar archive
//	encrypt     encrypt a file in place, storing a one-time key
//	decrypt     decrypt a file in place, deleting its key
//	history     show the latest journaled operations
//	exit | quit leave the program
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
