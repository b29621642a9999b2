package logging

import (
	"log/slog"

	"github.com/ormanli/slipscan/internal/app/scanner"
)

// Setup setups logger configuration.
func Setup(cfg scanner.Config) {
	if cfg.InitDebug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
		slog.Debug("Initializing debug level logging")
	}
}
