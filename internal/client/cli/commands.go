package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/utilitybox/internal/archive"
	"github.com/dmitrijs2005/utilitybox/internal/client/services"
	"github.com/dmitrijs2005/utilitybox/internal/oplog"
)

var errUnknownOption = errors.New("unknown option")

const historyLimit = 20

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}

// askAll asks each prompt in turn and stops at the first read error.
func (a *App) askAll(prompts ...string) ([]string, error) {
	answers := make([]string, 0, len(prompts))
	for _, p := range prompts {
		v, err := a.ask(p)
		if err != nil {
			return nil, err
		}
		answers = append(answers, v)
	}
	return answers, nil
}

func (a *App) Search(ctx context.Context) error {
	in, err := a.askAll(
		"Enter the folder path:",
		"File name (empty to search by extension only):",
		"File extension without the dot (may be empty when a name is given):",
	)
	if err != nil {
		return err
	}
	a.printOutcome(a.service.Search(ctx, in[0], in[1], in[2]))
	return nil
}

func (a *App) Sort(ctx context.Context) error {
	in, err := a.askAll(
		"Enter the folder path:",
		"Sort by: 1) single extension  2) multiple extensions  3) keyword",
	)
	if err != nil {
		return err
	}
	dir, mode := in[0], in[1]

	var out services.Outcome
	switch mode {
	case "1":
		ext, err := a.ask("File extension:")
		if err != nil {
			return err
		}
		out = a.service.SortByExtension(ctx, dir, ext)
	case "2":
		csv, err := a.ask("File extensions, comma separated:")
		if err != nil {
			return err
		}
		out = a.service.SortByExtensions(ctx, dir, csv)
	case "3":
		kw, err := a.askAll(
			"Keyword contained in the file names:",
			"Extension the files end with (may be empty):",
			"New name for the sorted files:",
		)
		if err != nil {
			return err
		}
		out = a.service.SortByKeyword(ctx, dir, kw[0], kw[1], kw[2])
	default:
		return fmt.Errorf("%w: %q", errUnknownOption, mode)
	}
	a.printOutcome(out)
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	in, err := a.askAll(
		"Enter the folder path:",
		"Delete by: 1) single extension  2) multiple extensions  3) keyword",
	)
	if err != nil {
		return err
	}
	dir, mode := in[0], in[1]

	var out services.Outcome
	switch mode {
	case "1":
		ext, err := a.ask("File extension:")
		if err != nil {
			return err
		}
		out = a.service.DeleteByExtension(ctx, dir, ext)
	case "2":
		csv, err := a.ask("File extensions, comma separated:")
		if err != nil {
			return err
		}
		out = a.service.DeleteByExtensions(ctx, dir, csv)
	case "3":
		kw, err := a.askAll(
			"Keyword contained in the file names:",
			"Restrict to extensions, comma separated (empty for any):",
		)
		if err != nil {
			return err
		}
		out = a.service.DeleteByKeyword(ctx, dir, kw[0], kw[1])
	default:
		return fmt.Errorf("%w: %q", errUnknownOption, mode)
	}
	a.printOutcome(out)
	return nil
}

func (a *App) Compress(ctx context.Context) error {
	in, err := a.askAll("Archive format (zip or rar):", "Archive name:")
	if err != nil {
		return err
	}
	format, err := archive.ParseFormat(in[0])
	if err != nil {
		return err
	}
	files, err := GetLines(a.reader, "Files to compress, one path per line:", a.out)
	if err != nil {
		return err
	}
	dest, err := a.ask("Destination folder (empty for " + a.config.DefaultDir + "):")
	if err != nil {
		return err
	}
	a.printOutcome(a.service.Compress(ctx, format, in[1], files, dest))
	return nil
}

func (a *App) Decompress(ctx context.Context) error {
	in, err := a.askAll(
		"Archive path:",
		"Destination folder (empty for "+a.config.DefaultDir+"):",
	)
	if err != nil {
		return err
	}
	a.printOutcome(a.service.Decompress(ctx, in[0], in[1]))
	return nil
}

func (a *App) Encrypt(ctx context.Context) error {
	path, err := a.ask("Enter the file path:")
	if err != nil {
		return err
	}
	a.printOutcome(a.service.Encrypt(ctx, path))
	return nil
}

func (a *App) Decrypt(ctx context.Context) error {
	path, err := a.ask("Enter the file path:")
	if err != nil {
		return err
	}
	a.printOutcome(a.service.Decrypt(ctx, path))
	return nil
}

func (a *App) History(ctx context.Context) error {
	ops, err := a.service.History(ctx, historyLimit)
	if errors.Is(err, services.ErrHistoryDisabled) {
		fmt.Fprintln(a.out, "History is disabled.")
		return nil
	}
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		fmt.Fprintln(a.out, "No operations recorded yet.")
		return nil
	}
	for _, op := range ops {
		fmt.Fprintf(a.out, "%s  %-10s %d  %3d  %s\n",
			op.CreatedAt.Local().Format("2006-01-02 15:04:05"), op.Operation, op.Status, op.Affected, op.Target)
	}
	return nil
}

// printOutcome shows the details the status line leaves out.
func (a *App) printOutcome(out services.Outcome) {
	if !out.Status.Success() {
		if out.Err != nil && out.Status != oplog.StatusBadPath {
			fmt.Fprintf(a.out, "\t%v\n", out.Err)
		}
		return
	}
	if out.Err != nil {
		fmt.Fprintf(a.out, "\tsome files were skipped: %v\n", out.Err)
	}

	if out.Operation == oplog.Search {
		for _, f := range out.Files {
			fmt.Fprintf(a.out, "\t%s\n", f)
		}
	}
	if out.Destination != "" {
		fmt.Fprintf(a.out, "\t-> %s\n", out.Destination)
	}
	if out.Remote != "" {
		fmt.Fprintf(a.out, "\tuploaded to %s\n", out.Remote)
	}

	names := make([]string, 0, len(out.Pairs))
	for n := range out.Pairs {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(a.out, "\t%s: key %s\n", n, out.Pairs[n])
	}
}
