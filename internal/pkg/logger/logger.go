package logger

import (
	"log/slog"
	"os"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"

	"bitpanda_watcher/internal/config"
)

// Bootstrap creates the logrus logger used during startup before the
// configuration is available. JSON to stdout at info level.
func Bootstrap() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)
	return log
}

// NewZapLogger creates the zap logger shared by services and installs a
// zapslog bridge as the default slog logger so third-party code logging via
// slog lands in the same stream.
func NewZapLogger() (*zap.Logger, error) {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	slogHandler := zapslog.NewHandler(zapLogger.Core())
	slog.SetDefault(slog.New(slogHandler))
	return zapLogger, nil
}

// ApplyConfig reconfigures the logrus logger from the loaded configuration:
// level and, when set, an append-only log file.
func ApplyConfig(log *logrus.Logger, cfg config.LoggingConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		log.Warnf("Invalid log level in config: %s. Defaulting to Info.", cfg.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			log.SetOutput(file)
		} else {
			log.Infof("Failed to log to file, using default stdout: %v", err)
		}
	}
}
