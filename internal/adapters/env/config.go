package env

import (
	"log/slog"
	"os"
	"strings"
)

const (
	DefaultAddr      = "0.0.0.0:5000"
	DefaultOutputDir = "build"
)

type Config struct {
	Dev            bool
	Addr           string
	OutputDir      string
	KeepExtraFiles bool
	// NoColor follows the NO_COLOR convention: any non-empty value disables
	// ANSI colors in terminal output.
	NoColor        bool
	LogLevel       slog.Level
}

func Load() Config {
	cfg := Config{
		Dev:            enabled("FROST_DEV"),
		Addr:           stringOr("FROST_ADDR", DefaultAddr),
		OutputDir:      stringOr("FROST_OUTPUT_DIR", DefaultOutputDir),
		KeepExtraFiles: enabled("FROST_KEEP_EXTRA_FILES"),
		NoColor:        os.Getenv("NO_COLOR") != "",
		LogLevel:       slog.LevelInfo,
	}

	if cfg.Dev {
		cfg.LogLevel = slog.LevelDebug
	}
	if lvl := os.Getenv("FROST_LOG_LEVEL"); lvl != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(lvl)); err == nil {
			cfg.LogLevel = parsed
		}
	}

	return cfg
}

// NewLogger writes JSON records in production and text records in dev mode.
func (c Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.Dev {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func enabled(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func stringOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
