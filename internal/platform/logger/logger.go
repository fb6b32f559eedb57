// Package logger monta o *zap.Logger do serviço. Nível e formato vêm do
// ambiente; o nome do serviço entra como campo fixo em todas as linhas.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New cria o logger com o nível ("debug", "info", "warn", "error") e o
// formato ("json" ou "console") pedidos.
func New(level, format, serviceName string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	var config zap.Config
	if strings.EqualFold(format, "console") {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.OutputPaths = []string{"stdout"}
		config.ErrorOutputPaths = []string{"stderr"}
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	log, err := config.Build()
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(serviceName); name != "" {
		log = log.With(zap.String("service", name))
	}
	return log, nil
}

// NewFromEnv lê LOG_LEVEL, LOG_FORMAT e APP_NAME. Nunca falha: se a
// construção der errado, devolve o logger de produção padrão.
func NewFromEnv() *zap.Logger {
	log, err := New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Getenv("APP_NAME"))
	if err != nil {
		fallback, _ := zap.NewProduction()
		return fallback
	}
	return log
}
