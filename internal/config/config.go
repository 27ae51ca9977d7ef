// Package config loads huffpack's settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/chronos-tachyon/huffpack/internal/logger"
)

const (
	EnvLogLevel = "HUFFPACK_LOG_LEVEL"
	EnvFileMode = "HUFFPACK_FILE_MODE"
)

type Config struct {
	// LogLevel is the minimum level of messages written to stderr.
	LogLevel logger.Level

	// FileMode is the permission set given to newly created output files.
	FileMode os.FileMode
}

// Default returns the settings used when no environment variable is set.
func Default() Config {
	return Config{
		LogLevel: logger.LevelError,
		FileMode: 0o644,
	}
}

// Load reads the settings from the process environment.
func Load() (Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom reads the settings through lookup, which has the signature of
// os.LookupEnv.
func LoadFrom(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if str, found := lookup(EnvLogLevel); found && str != "" {
		lvl, err := logger.ParseLevel(str)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = lvl
	}

	if str, found := lookup(EnvFileMode); found && str != "" {
		mode, err := strconv.ParseUint(str, 8, 32)
		if err != nil || mode > 0o777 {
			return Config{}, fmt.Errorf("%s: invalid octal file mode %q", EnvFileMode, str)
		}
		cfg.FileMode = os.FileMode(mode)
	}

	return cfg, nil
}
