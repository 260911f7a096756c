package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
)

const tagKey = "tag" // attribute key matched by the tag filter

// filteringHandler drops records by tag, package or file before handing
// them to the wrapped handler.
type filteringHandler struct {
	baseHandler slog.Handler
	cfg         *Config
	// tag attached through WithAttrs, if any
	tag string
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{baseHandler: base, cfg: cfg}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.baseHandler.Enabled(ctx, level)
}

// recordSource returns the package directory and file name of the record's caller.
func recordSource(r slog.Record) (pkg, file string) {
	if r.PC == 0 {
		return "", ""
	}
	frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
	if frame.File == "" {
		return "", ""
	}
	return filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File)
}

func recordTag(r slog.Record) string {
	var tag string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = a.Value.String()
			return false
		}
		return true
	})
	return tag
}

// Handle applies the filters and forwards surviving records.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.baseHandler.Handle(ctx, r)
	}

	pkg, file := recordSource(r)
	tag := recordTag(r)
	if tag == "" {
		tag = h.tag
	}

	var reason string
	switch {
	case !h.cfg.packages.allows(pkg):
		reason = "package " + pkg
	case !h.cfg.files.allows(file):
		reason = "file " + file
	case tag == "" && h.cfg.tags.enabled != nil:
		reason = "untagged record while tags are enabled"
	case !h.cfg.tags.allows(tag):
		reason = "tag " + tag
	}

	if debugFilter {
		if reason != "" {
			fmt.Fprintf(os.Stderr, "[FILTER] dropped %q (%s)\n", r.Message, reason)
		} else {
			fmt.Fprintf(os.Stderr, "[FILTER] passed %q pkg=%s file=%s tag=%s\n", r.Message, pkg, file, tag)
		}
	}
	if reason != "" {
		return nil
	}
	return h.baseHandler.Handle(ctx, r)
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := newFilteringHandler(h.baseHandler.WithAttrs(attrs), h.cfg)
	next.tag = h.tag
	for _, a := range attrs {
		if a.Key == tagKey {
			next.tag = a.Value.String()
		}
	}
	return next
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	next := newFilteringHandler(h.baseHandler.WithGroup(name), h.cfg)
	next.tag = h.tag
	return next
}
