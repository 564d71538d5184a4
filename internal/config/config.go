package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomfield/quickpick/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envRoot        = "QUICKPICK_ROOT"
	envMode        = "QUICKPICK_MODE"
	envWidth       = "QUICKPICK_WIDTH"
	envHeight      = "QUICKPICK_HEIGHT"
	envShowFooter  = "QUICKPICK_FOOTER"
	envHidden      = "QUICKPICK_HIDDEN"
	envHistoryFile = "QUICKPICK_HISTORY_FILE"
	envTrace       = "QUICKPICK_TRACE"
	envLogFile     = "QUICKPICK_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("quickpick", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	root := fs.String("root", envOrDefault(env, envRoot, ""), "directory to index (defaults to the working directory)")
	mode := fs.String("mode", envOrDefault(env, envMode, app.ModeFiles), "picker mode: files, commands or recent")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	hidden := fs.Bool("hidden", envOrBool(env, envHidden, false), "include hidden files and directories in the index")
	historyFile := fs.String("history-file", envOrDefault(env, envHistoryFile, ""), "path to the pick-history database")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			Root:          *root,
			Mode:          *mode,
			Width:         *width,
			Height:        *height,
			ShowFooter:    *footer,
			IncludeHidden: *hidden,
			HistoryFile:   *historyFile,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"root":        *root,
			"mode":        *mode,
			"width":       strconv.Itoa(*width),
			"height":      strconv.Itoa(*height),
			"footer":      strconv.FormatBool(*footer),
			"hidden":      strconv.FormatBool(*hidden),
			"historyFile": *historyFile,
			"trace":       strconv.FormatBool(*trace),
			"logFile":     *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	switch cfg.App.Mode {
	case app.ModeFiles, app.ModeCommands, app.ModeRecent:
	default:
		return fmt.Errorf("unknown mode %q (want files, commands or recent)", cfg.App.Mode)
	}
	return nil
}
