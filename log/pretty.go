package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// levelColor maps a slog level to its display color.
func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	case Level(level) >= LevelVerbose:
		return colorCyan
	default:
		return colorGray
	}
}

// prettyTextHandler implements a colorized text handler for log messages.
type prettyTextHandler struct {
	opts  slog.HandlerOptions
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{
		opts:  *opts,
		mu:    &sync.Mutex{},
		w:     w,
		attrs: nil,
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		stamp := h.replaced(slog.Time(slog.TimeKey, r.Time))
		if !stamp.Equal(slog.Attr{}) {
			fmt.Fprintf(buf, "%s%s%s ",
				colorGray, stamp.Value.String(), colorReset)
		}
	}

	fmt.Fprintf(buf, "%s%s%s ",
		levelColor(r.Level),
		h.replaced(slog.Any(slog.LevelKey, r.Level)).Value.String(),
		colorReset,
	)

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fmt.Fprintf(buf, "%s%s:%d%s ",
				colorGray, src.File, src.Line, colorReset)
		}
	}

	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		h.writeAttr(buf, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{
		opts:  h.opts,
		mu:    h.mu,
		w:     h.w,
		attrs: append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
	}
}

func (h *prettyTextHandler) WithGroup(string) slog.Handler {
	return h
}

// replaced runs the configured ReplaceAttr on a synthesized attribute.
func (h *prettyTextHandler) replaced(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		for _, member := range a.Value.Group() {
			if a.Key != "" {
				member.Key = a.Key + "." + member.Key
			}

			h.writeAttr(buf, member)
		}

		return
	}

	fmt.Fprintf(buf, " %s%s=%s", colorGray, a.Key, colorReset)

	switch a.Value.Kind() {
	case slog.KindString:
		fmt.Fprintf(buf, "%s%s%s", colorCyan, a.Value.String(), colorReset)
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		fmt.Fprintf(buf, "%s%s%s", colorMagenta, a.Value.String(), colorReset)
	case slog.KindBool:
		fmt.Fprintf(buf, "%s%s%s", colorBlue, a.Value.String(), colorReset)
	default:
		buf.WriteString(a.Value.String())
	}
}

// prettyJSONHandler implements a colorized multiline JSON handler.
type prettyJSONHandler struct {
	opts  slog.HandlerOptions
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
}

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyJSONHandler {
	return &prettyJSONHandler{
		opts:  *opts,
		mu:    &sync.Mutex{},
		w:     w,
		attrs: nil,
	}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	record := map[string]any{
		slog.LevelKey:   Level(r.Level).String(),
		slog.MessageKey: r.Message,
	}

	if !r.Time.IsZero() && h.opts.ReplaceAttr != nil {
		stamp := h.opts.ReplaceAttr(nil, slog.Time(slog.TimeKey, r.Time))
		if !stamp.Equal(slog.Attr{}) {
			record[slog.TimeKey] = stamp.Value.String()
		}
	}

	for _, a := range h.attrs {
		record[a.Key] = attrValue(a.Value)
	}

	r.Attrs(func(a slog.Attr) bool {
		record[a.Key] = attrValue(a.Value)

		return true
	})

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err = h.w.Write(append(data, '\n'))

	return err
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{
		opts:  h.opts,
		mu:    h.mu,
		w:     h.w,
		attrs: append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
	}
}

func (h *prettyJSONHandler) WithGroup(string) slog.Handler {
	return h
}

// attrValue converts a slog.Value to a JSON-friendly Go value.
func attrValue(v slog.Value) any {
	v = v.Resolve()

	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return v.Int64()
	case slog.KindUint64:
		return v.Uint64()
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindBool:
		return v.Bool()
	case slog.KindGroup:
		group := make(map[string]any, len(v.Group()))
		for _, member := range v.Group() {
			group[member.Key] = attrValue(member.Value)
		}

		return group
	default:
		return v.String()
	}
}
