package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	applog "ledgerctl/internal/log"
)

const envPrefix = "LEDGER_"

// DefaultPath is the config file read when no --config flag is given.
const DefaultPath = "ledger.yaml"

type Config struct {
	// Storage
	Backend    string `koanf:"backend"`
	File       string `koanf:"file"`
	SQLitePath string `koanf:"sqlitepath"`

	// Reporting and export
	Currency  string `koanf:"currency"`
	ExportDir string `koanf:"exportdir"`

	Log    Log    `koanf:"log"`
	AMQP   AMQP   `koanf:"amqp"`
	Google Google `koanf:"google"`
}

type Log struct {
	Level string `koanf:"level"`
}

// AMQP configures the optional change-event publisher. Empty URL disables it.
type AMQP struct {
	URL      string `koanf:"url"`
	Exchange string `koanf:"exchange"`
	Queue    string `koanf:"queue"`
}

// Google configures the optional Google Sheets export target.
type Google struct {
	SpreadsheetID      string `koanf:"spreadsheetid"`
	SheetName          string `koanf:"sheetname"`
	ServiceAccountFile string `koanf:"serviceaccountfile"`
	ServiceAccountJSON string `koanf:"serviceaccountjson"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Backend:    "json",
		File:       "./expense.json",
		SQLitePath: "./data/ledger.db",
		Currency:   "₹",
		ExportDir:  defaultExportDir(),
		Log:        Log{Level: "warn"},
		AMQP: AMQP{
			Exchange: "ledger",
			Queue:    "ledger_events",
		},
		Google: Google{
			SheetName: "Expenses",
		},
	}
}

// Load layers defaults, the YAML file at path (if present) and LEDGER_*
// environment variables, in that order.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("load config file %s: %w", path, err)
			}
			slog.Debug("Config file not found, using defaults and environment",
				applog.FieldComponent, applog.ComponentConfig, applog.FieldPath, path)
		} else {
			slog.Debug("Loaded configuration from file",
				applog.FieldComponent, applog.ComponentConfig, applog.FieldPath, path)
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load config from environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	validBackends := []string{"json", "sqlite"}
	switch c.Backend {
	case "json":
		if strings.TrimSpace(c.File) == "" {
			errs = append(errs, "ledger file path cannot be empty when using json backend")
		}
	case "sqlite":
		if strings.TrimSpace(c.SQLitePath) == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid backend '%s': must be one of %v", c.Backend, validBackends))
	}

	if strings.TrimSpace(c.Currency) == "" {
		errs = append(errs, "currency symbol cannot be empty")
	}

	if _, err := applog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.Log.Level))
	}

	if c.AMQP.URL != "" {
		if parsedURL, err := url.Parse(c.AMQP.URL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQP.URL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQP.Exchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQP.Queue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.Google.SpreadsheetID != "" {
		if c.Google.SheetName == "" {
			errs = append(errs, "Google Sheet name is required when a spreadsheet ID is set")
		}
		if c.Google.ServiceAccountFile == "" && c.Google.ServiceAccountJSON == "" {
			errs = append(errs, "either google.serviceaccountfile or google.serviceaccountjson must be provided for sheets export")
		}
		if c.Google.ServiceAccountFile != "" {
			if _, err := os.Stat(c.Google.ServiceAccountFile); os.IsNotExist(err) {
				errs = append(errs, fmt.Sprintf("Google service account file does not exist: %s", c.Google.ServiceAccountFile))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// SheetsEnabled reports whether a Google Sheets export target is configured.
func (c *Config) SheetsEnabled() bool {
	return c.Google.SpreadsheetID != ""
}

// CSVPath is where `save` writes the expense export.
func (c *Config) CSVPath() string {
	return filepath.Join(c.ExportDir, "expenses.csv")
}

func defaultExportDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Desktop")
}
