package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"bogus":   zapcore.InfoLevel,
		" INFO ":  zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestBuildNeverReturnsNil(t *testing.T) {
	for _, cfg := range []Config{
		{},
		{Env: "prod", Level: "debug"},
		{Format: "json"},
		{Format: "console", ServiceName: "portalgate"},
	} {
		if build(cfg) == nil {
			t.Fatalf("build(%+v) = nil", cfg)
		}
	}
}
