package config

import (
	"os"

	"github.com/phuslu/log"
)

// SetupLogging configures the global logger. Output goes to stderr so the
// MCP stdio transport keeps stdout to itself.
func SetupLogging(c LoggingConfig) {
	logger := log.Logger{
		Level:  log.ParseLevel(c.Level),
		Writer: &log.IOWriter{Writer: os.Stderr},
	}
	if c.Console {
		logger.Writer = &log.ConsoleWriter{
			ColorOutput:    true,
			EndWithMessage: true,
			Writer:         os.Stderr,
		}
	}
	log.DefaultLogger = logger
}
