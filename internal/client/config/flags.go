package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/utilitybox/internal/flagx"
)

var knownFlags = []string{"-r", "-d", "-l", "-cipher", "-history"}

// parseFlags overlays cfg with the flags it knows about. Other arguments,
// including -c/-config, are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("utilitybox", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ResourcesDir, "r", cfg.ResourcesDir, "resources root (logs, keys, history)")
	fs.StringVar(&cfg.DefaultDir, "d", cfg.DefaultDir, "default directory for archive output")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "diagnostic log level")
	fs.StringVar(&cfg.Cipher, "cipher", cfg.Cipher, "cipher suite for new encryptions")
	history := fs.String("history", cfg.HistoryDB, "sqlite history journal path (empty disables)")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "history" {
			cfg.HistoryDB = *history
			cfg.historySet = true
		}
	})
	return nil
}
