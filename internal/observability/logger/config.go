package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config configura el logger del servicio.
type Config struct {
	// Env es el entorno de ejecución ("dev", "staging", "prod"). En prod el
	// formato por defecto es JSON; en cualquier otro, consola con colores.
	Env string

	// Level es el nivel mínimo: "debug", "info", "warn", "error".
	// Default: "info"
	Level string

	// Format fuerza el encoder: "json" o "console". Vacío deja decidir a Env.
	Format string

	// ServiceName se agrega como campo base en cada línea. Opcional.
	ServiceName string
}

func build(cfg Config) *zap.Logger {
	level := parseLevel(cfg.Level)

	format := strings.ToLower(cfg.Format)
	if format == "" {
		if strings.ToLower(cfg.Env) == "prod" {
			format = "json"
		} else {
			format = "console"
		}
	}

	var l *zap.Logger
	var err error
	if format == "json" {
		l, err = buildJSON(level)
	} else {
		l, err = buildConsole(level)
	}
	if err != nil {
		l, _ = zap.NewProduction()
	}

	if cfg.ServiceName != "" {
		l = l.With(zap.String("service", cfg.ServiceName))
	}
	return l
}

// buildConsole arma el encoder legible para desarrollo local: nivel con
// color, hora corta, sin stacktrace debajo de error.
func buildConsole(level zapcore.Level) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zcfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	zcfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	zcfg.DisableStacktrace = true
	return zcfg.Build(zap.AddCaller(), zap.AddCallerSkip(1))
}

// buildJSON arma el encoder de producción: JSON, tiempo ISO8601, stacktrace
// a partir de error.
func buildJSON(level zapcore.Level) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	return zcfg.Build(
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
}

func parseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
