package logger

import (
	"bytes"
	"context"
	"log/slog"
	"runtime"
	"strings"
	"testing"
	"time"
)

func newTestHandler(cfg Config) (*filteringHandler, *bytes.Buffer) {
	var out bytes.Buffer
	cfg.process()
	base := slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug})
	return newFilteringHandler(base, &cfg), &out
}

func recordHere(msg string, attrs ...slog.Attr) slog.Record {
	var pcs [1]uintptr
	runtime.Callers(1, pcs[:])
	r := slog.NewRecord(time.Now(), slog.LevelDebug, msg, pcs[0])
	r.AddAttrs(attrs...)
	return r
}

func TestFilteringHandler(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		attrs []slog.Attr
		pass  bool
	}{
		{"no filters", Config{}, nil, true},
		{"disabled package", Config{DisabledPackages: []string{"logger"}}, nil, false},
		{"enabled other package", Config{EnabledPackages: []string{"history"}}, nil, false},
		{"enabled this file", Config{EnabledFiles: []string{"handler_test.go"}}, nil, true},
		{"disabled file case insensitive", Config{DisabledFiles: []string{"HANDLER_TEST.GO"}}, nil, false},
		{"enabled tag matches", Config{EnabledTags: []string{"config"}}, []slog.Attr{slog.String(tagKey, "config")}, true},
		{"enabled tag drops untagged", Config{EnabledTags: []string{"config"}}, nil, false},
		{"disabled tag", Config{DisabledTags: []string{"undo"}}, []slog.Attr{slog.String(tagKey, "Undo")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, out := newTestHandler(tt.cfg)
			if err := h.Handle(context.Background(), recordHere("hello", tt.attrs...)); err != nil {
				t.Fatalf("Handle: %v", err)
			}
			got := strings.Contains(out.String(), "hello")
			if got != tt.pass {
				t.Errorf("passed = %v, want %v (output %q)", got, tt.pass, out.String())
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"err":     slog.LevelError,
	}
	for name, want := range tests {
		got, ok := ParseLevel(name)
		if !ok || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", name, got, ok, want)
		}
	}
	if _, ok := ParseLevel("verbose"); ok {
		t.Errorf("ParseLevel accepted an unknown level")
	}
}
