package playctl

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"playd/internal/config"
)

// Names tied to the supported runtime distribution.
const (
	runtimeBinary  = "ollama"
	runtimePackage = "ollama"
	runtimeService = "ollama.service"
)

// Config carries CLI-level settings shared by all commands.
type Config struct {
	ConfigPath string
	LogLvl     string
}

// loadSettings resolves the daemon configuration the same way playd does:
// optional file, env overlay, then defaults.
func loadSettings(c *Config) (config.Config, error) {
	var cfg config.Config
	if c.ConfigPath != "" {
		loaded, err := config.Load(c.ConfigPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if err := config.FromEnv(&cfg); err != nil {
		return config.Config{}, fmt.Errorf("env config: %w", err)
	}
	config.ApplyDefaults(&cfg)
	return cfg, nil
}

// usageError marks a bad invocation (unknown command, wrong arity, bad flag)
// so Main can exit 2 instead of 1.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// MainWithArgs is a testable variant of Main that accepts args explicitly.
// Exit codes: 0 success, 1 operational failure, 2 usage error.
func MainWithArgs(args []string) int {
	cfg := &Config{
		ConfigPath: envStr("PLAYCTL_CONFIG", ""),
		LogLvl:     envStr("PLAYCTL_LOG_LEVEL", "info"),
	}
	root := buildRootCmdWith(cfg)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		var ue usageError
		// cobra reports unrecognized subcommands with a bare error
		if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
			return 2
		}
		return 1
	}
	return 0
}

// Main returns an exit code (0 for success, non-zero on error) for use by cmd/playctl.
func Main() int { return MainWithArgs(os.Args[1:]) }
