package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// Init construye el singleton. Idempotente: la primera llamada gana, las
// siguientes no tienen efecto. Se llama una vez al arrancar el proceso.
func Init(cfg Config) {
	once.Do(func() {
		instance = build(cfg)
	})
}

// L devuelve el singleton. Sin Init previo (tests, tools) construye uno de
// desarrollo en nivel info.
func L() *zap.Logger {
	if instance == nil {
		Init(Config{Env: "dev", Level: "info"})
	}
	return instance
}

// Named devuelve un logger con nombre de componente.
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// With devuelve un logger con campos persistentes (ej: portal_id en un
// worker que procesa un solo portal).
func With(fields ...zap.Field) *zap.Logger {
	return L().With(fields...)
}

// Sync flushea lo pendiente. Va en defer al final de main.
func Sync() error {
	if instance != nil {
		return instance.Sync()
	}
	return nil
}
