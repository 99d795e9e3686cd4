package cli

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/matzehuels/texatlas/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "texatlas"

	// envConfig names a config file used when --config is not given.
	envConfig = "TEXATLAS_CONFIG"

	// envLogLevel sets the log level when --verbose is not given.
	envLogLevel = "TEXATLAS_LOG_LEVEL"

	// envFile is loaded on startup when present.
	envFile = ".env"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Environment
// =============================================================================

// LoadEnv reads envFile into the process environment if it exists. Variables
// already set are left alone.
func LoadEnv() error {
	if _, err := os.Stat(envFile); err != nil {
		return nil
	}
	return godotenv.Load(envFile)
}

// LevelFromEnv returns the level named by TEXATLAS_LOG_LEVEL, or fallback
// when it is unset or invalid.
func LevelFromEnv(fallback log.Level) log.Level {
	s := strings.TrimSpace(os.Getenv(envLogLevel))
	if s == "" {
		return fallback
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return fallback
	}
	return level
}

// configFromEnv returns the config path from TEXATLAS_CONFIG.
func configFromEnv() string {
	return os.Getenv(envConfig)
}
