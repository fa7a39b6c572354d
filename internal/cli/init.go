// Package cli provides the process bootstrap shared by the ledgerctl commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ledgerctl/internal/config"
	applog "ledgerctl/internal/log"
)

// LoadEnvFile loads the .env file for local use.
// A missing file is ignored.
func LoadEnvFile(filenames ...string) {
	_ = godotenv.Load(filenames...)
}

// SetupLogger builds the process logger from a level name, writing to out,
// and sets it as the slog default.
func SetupLogger(level string, out io.Writer) (*applog.Logger, error) {
	lvl, err := applog.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := applog.DefaultConfig()
	cfg.Level = lvl
	cfg.Component = applog.ComponentCLI
	if out != nil {
		cfg.Output = out
	}
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger, nil
}

// LoadAndValidateConfig loads configuration from path and the environment,
// applies overrides and validates the result.
func LoadAndValidateConfig(path string, overrides ...func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	for _, o := range overrides {
		o(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GracefulShutdown returns a context cancelled on SIGINT or SIGTERM, and the
// function that stops listening for them.
func GracefulShutdown(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

type exitCoder interface {
	ExitCode() int
}

// ExitCode maps a command error to the process exit status. Errors carrying
// their own code (cli.Exit) keep it; any other error exits with 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ec exitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return 1
}

// Fatal prints err to stderr and exits with its status.
func Fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(ExitCode(err))
}
