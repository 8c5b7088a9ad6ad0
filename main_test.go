package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/danielhkuo/clubhub/cliparse"
)

func TestWarnUnsignedSessions(t *testing.T) {
	tests := []struct {
		name     string
		cfg      cliparse.Config
		wantWarn bool
	}{
		{"no hash key", cliparse.Config{}, true},
		{"signed", cliparse.Config{SessionHashKey: "0123456789abcdef0123456789abcdef"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			if got := warnUnsignedSessions(logger, tt.cfg); got != tt.wantWarn {
				t.Errorf("warnUnsignedSessions() = %v, want %v", got, tt.wantWarn)
			}

			logged := strings.Contains(buf.String(), "level=WARN") && strings.Contains(buf.String(), "SESSION_HASH_KEY")
			if logged != tt.wantWarn {
				t.Errorf("expected warning logged = %v, got output %q", tt.wantWarn, buf.String())
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{"text info", "info", "text", false},
		{"json debug", "debug", "json", false},
		{"empty format is text", "warn", "", false},
		{"bad level", "loud", "text", true},
		{"bad format", "info", "xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := newLogger(cliparse.Config{LogLevel: tt.level, LogFormat: tt.format})
			if (err != nil) != tt.wantErr {
				t.Fatalf("newLogger() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && logger == nil {
				t.Error("expected a logger")
			}
		})
	}
}
