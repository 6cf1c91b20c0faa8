package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Open returns a file logger under the user config dir. The TUI owns
// stdout, so logs never go there. Any setup failure yields a no-op
// logger; logging must never take the app down.
func Open() *zap.Logger {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return zap.NewNop()
		}
		configDir = filepath.Join(home, ".config")
	}

	logDir := filepath.Join(configDir, "autc")
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return zap.NewNop()
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(logDir, "autc.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
