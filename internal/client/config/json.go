package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/utilitybox/internal/flagx"
	"github.com/dmitrijs2005/utilitybox/internal/timex"
)

// JsonConfig is the on-disk shape. Pointer fields tell "absent" apart from
// "set to empty", which matters for history_db where "" disables the journal.
type JsonConfig struct {
	ResourcesDir *string         `json:"resources_dir"`
	DefaultDir   *string         `json:"default_dir"`
	LogLevel     *string         `json:"log_level"`
	LogFormat    *string         `json:"log_format"`
	Cipher       *string         `json:"cipher"`
	RarBinary    *string         `json:"rar_binary"`
	ToolTimeout  *timex.Duration `json:"tool_timeout"`
	HistoryDB    *string         `json:"history_db"`
	HistoryKeep  *int            `json:"history_keep"`
	S3           *JsonS3         `json:"s3"`
}

type JsonS3 struct {
	Bucket    string `json:"bucket"`
	Region    string `json:"region"`
	Endpoint  string `json:"endpoint"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.ResourcesDir, jc.ResourcesDir)
	setString(&cfg.DefaultDir, jc.DefaultDir)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.Cipher, jc.Cipher)
	setString(&cfg.RarBinary, jc.RarBinary)
	if jc.ToolTimeout != nil {
		cfg.ToolTimeout = jc.ToolTimeout.Duration
	}
	if jc.HistoryDB != nil {
		cfg.HistoryDB = *jc.HistoryDB
		cfg.historySet = true
	}
	if jc.HistoryKeep != nil {
		cfg.HistoryKeep = *jc.HistoryKeep
	}
	if jc.S3 != nil {
		cfg.S3 = S3{
			Bucket:    jc.S3.Bucket,
			Region:    jc.S3.Region,
			Endpoint:  jc.S3.Endpoint,
			AccessKey: jc.S3.AccessKey,
			SecretKey: jc.S3.SecretKey,
		}
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
