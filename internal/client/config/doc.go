// Package config loads runtime configuration for the utilitybox CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config (see parseJson).
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-r string        resources root holding logs/, keys/ and the history db
//	-d string        default directory for archive output and extraction
//	-l string        diagnostic log level (debug, info, warn, error)
//	-cipher string   cipher suite for new encryptions (aes-gcm, xchacha20poly1305)
//	-history string  path of the sqlite history journal ("" disables it)
//
// # JSON schema
//
// Durations use timex.Duration, so "2m" and integer nanoseconds both work:
//
//	{
//	  "resources_dir": "./resources/results",
//	  "default_dir": "/home/me/Desktop",
//	  "log_level": "info",
//	  "log_format": "json",
//	  "cipher": "aes-gcm",
//	  "rar_binary": "/usr/bin/rar",
//	  "tool_timeout": "2m",
//	  "history_db": "./resources/results/history.db",
//	  "history_keep": 1000,
//	  "s3": {"bucket": "backups", "region": "eu-central-1"}
//	}
//
// Keys absent from the file leave the earlier value untouched.
package config
