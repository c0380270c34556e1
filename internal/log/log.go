package log

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"
)

// enabledSections gates Debug/Info records by their "section" attribute.
// Override with a comma-separated GRACE_LOG_SECTIONS.
var enabledSections = sectionsFromEnv([]string{
	"validate",
	"resolve",
})

func sectionsFromEnv(fallback []string) []string {
	env := os.Getenv("GRACE_LOG_SECTIONS")
	if env == "" {
		return fallback
	}
	return strings.Split(env, ",")
}

var LoggerOpts = &slog.HandlerOptions{
	AddSource: true,
	Level:     slog.LevelDebug,
	ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == "time" {
			return slog.Attr{}
		}
		return a
	},
}

var DefaultLogger = slog.New(&sectionHandler{underlying: slog.NewTextHandler(os.Stderr, LoggerOpts)})

var _ slog.Handler = &sectionHandler{}

// sectionHandler drops low-severity records whose section is not enabled.
// Warn and above always pass through.
type sectionHandler struct {
	underlying slog.Handler
	sections   []string
}

func sectionEnabled(section string) bool {
	return slices.ContainsFunc(enabledSections, func(enabled string) bool {
		return strings.HasPrefix(section, enabled)
	})
}

func (h sectionHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.underlying.Enabled(ctx, level)
}

func (h sectionHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= slog.LevelWarn {
		return h.underlying.Handle(ctx, record)
	}
	want := slices.ContainsFunc(h.sections, sectionEnabled)
	if !want {
		record.Attrs(func(attr slog.Attr) bool {
			want = want || attr.Key == "section" && sectionEnabled(attr.Value.String())
			return !want
		})
	}
	if !want {
		return nil
	}
	return h.underlying.Handle(ctx, record)
}

func (h sectionHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sections := slices.Clone(h.sections)
	var rest []slog.Attr
	for _, attr := range attrs {
		if attr.Key == "section" {
			sections = append(sections, attr.Value.String())
		} else {
			rest = append(rest, attr)
		}
	}
	underlying := h.underlying
	if len(rest) > 0 {
		underlying = underlying.WithAttrs(rest)
	}
	return &sectionHandler{
		underlying: underlying,
		sections:   sections,
	}
}

func (h sectionHandler) WithGroup(name string) slog.Handler {
	return &sectionHandler{
		underlying: h.underlying.WithGroup(name),
		sections:   h.sections,
	}
}
