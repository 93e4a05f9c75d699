package logging

import (
	"github.com/tasmil-labs/tasmilindexer/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger *zap.SugaredLogger

func Configure() {
	cfg := config.GetConfig()
	var level zapcore.Level
	switch cfg.Logging.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		// Fall back to a minimal logger rather than leaving globalLogger nil
		logger = zap.NewExample()
	}
	globalLogger = logger.Sugar().With("component", "tasmilindexer")
}

func GetLogger() *zap.SugaredLogger {
	if globalLogger == nil {
		Configure()
	}
	return globalLogger
}
