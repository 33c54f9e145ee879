package logger

import (
	"go.uber.org/zap"
)

var log = zap.Must(zap.NewProduction())

// Init replaces the default production logger. Call once at startup;
// development mode switches to the human-readable console encoder.
func Init(environment string) {
	if environment == "development" {
		log = zap.Must(zap.NewDevelopment())
		return
	}
	log = zap.Must(zap.NewProduction())
}

func Info(msg string, fields ...zap.Field) {
	log.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	log.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	log.Error(msg, fields...)
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = log.Sync()
}
