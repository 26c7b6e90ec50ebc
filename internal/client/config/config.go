package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/utilitybox/internal/filex"
)

// S3 configures optional upload of created archives. An empty Bucket
// disables uploading.
type S3 struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// Config holds runtime settings for the utilitybox CLI.
type Config struct {
	ResourcesDir string
	DefaultDir   string
	LogLevel     string
	LogFormat    string
	Cipher       string
	RarBinary    string
	ToolTimeout  time.Duration
	HistoryDB    string
	// HistoryKeep caps the journal at the newest rows. Zero keeps everything.
	HistoryKeep int
	S3           S3

	historySet bool
}

// LoadDefaults populates c with defaults. DefaultDir is the user's desktop
// when a home directory is known, the working directory otherwise.
func (c *Config) LoadDefaults() {
	c.ResourcesDir = filepath.Join(".", "resources", "results")
	c.DefaultDir = "."
	if home, err := os.UserHomeDir(); err == nil {
		c.DefaultDir = filepath.Join(home, "Desktop")
	}
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.Cipher = "aes-gcm"
	c.RarBinary = "rar"
	c.ToolTimeout = 2 * time.Minute
	c.HistoryKeep = 1000
}

// LoadConfig applies defaults, then the JSON file, then flags from args
// (normally os.Args[1:]).
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if !cfg.historySet {
		cfg.HistoryDB = filepath.Join(cfg.ResourcesDir, "history.db")
	}
	return cfg, nil
}

func (c *Config) LogsDir() string { return filepath.Join(c.ResourcesDir, "logs") }

func (c *Config) KeysDir() string { return filepath.Join(c.ResourcesDir, "keys") }

// EnsureDirs creates the logs and keys folders under ResourcesDir.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.LogsDir(), c.KeysDir()} {
		if _, err := filex.EnsureDir(dir); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}
