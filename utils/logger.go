package utils

import (
	"log"
	"os"
	"path/filepath"

	"turfacademy/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Global logger instance
var Logger *zap.Logger

// InitializeLogger sets up the logging configuration. Entries go to stdout and,
// when LOG_PATH is set, to a rotating file.
func InitializeLogger() {
	var encoderCfg zapcore.EncoderConfig
	var encoder zapcore.Encoder
	level := zap.DebugLevel

	if config.IsProduction() {
		encoderCfg = zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderCfg)
		level = zap.InfoLevel
	} else {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}
	if lvl, err := zapcore.ParseLevel(config.AppConfig.LogLevel); err == nil && config.AppConfig.LogLevel != "" {
		level = lvl
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level),
	}

	if path := config.AppConfig.LogPath; path != "" {
		if err := os.MkdirAll(path, 0o755); err != nil {
			log.Printf("Failed to create log directory %s: %v", path, err)
		} else {
			fileWriter := zapcore.AddSync(&lumberjack.Logger{
				Filename:   filepath.Join(path, "turfacademy.log"),
				MaxSize:    10, // MB
				MaxBackups: 7,
				MaxAge:     28, // days
				Compress:   true,
			})
			// Files always get JSON so they can be shipped as-is.
			fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
			cores = append(cores, zapcore.NewCore(fileEncoder, fileWriter, level))
		}
	}

	Logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	zap.ReplaceGlobals(Logger)
}

// GetLogger retrieves the global logger
func GetLogger() *zap.Logger {
	if Logger == nil {
		InitializeLogger()
	}
	return Logger
}
