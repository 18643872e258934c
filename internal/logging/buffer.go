package logging

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const DefaultCapacity = 100

type Level string

const (
	LevelDebug   Level = "DEBUG"
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
)

func levelOf(l slog.Level) Level {
	switch {
	case l >= slog.LevelError:
		return LevelError
	case l >= slog.LevelWarn:
		return LevelWarning
	case l >= slog.LevelInfo:
		return LevelInfo
	}
	return LevelDebug
}

// ParseLevel accepts the buffer level names plus "WARN".
func ParseLevel(s string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, true
	case "INFO":
		return LevelInfo, true
	case "WARN", "WARNING":
		return LevelWarning, true
	case "ERROR":
		return LevelError, true
	}
	return "", false
}

type Entry struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     Level          `json:"level"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
}

// Buffer keeps the most recent log entries in memory and mirrors every
// record to a console handler.
type Buffer struct {
	mu       sync.Mutex
	entries  []Entry
	capacity int
	console  slog.Handler
}

func NewBuffer(capacity int, console io.Writer) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	b := &Buffer{capacity: capacity}
	if console != nil {
		b.console = slog.NewTextHandler(console, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return b
}

func (b *Buffer) Logger() *slog.Logger {
	return slog.New(&handler{buf: b, console: b.console})
}

func (b *Buffer) add(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, e)
	if over := len(b.entries) - b.capacity; over > 0 {
		b.entries = append(b.entries[:0:0], b.entries[over:]...)
	}
}

// Entries returns a copy of the buffer, oldest first. An empty level
// returns every entry.
func (b *Buffer) Entries(level Level) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Entry, 0, len(b.entries))
	for _, e := range b.entries {
		if level == "" || e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

func (b *Buffer) Clear() {
	b.mu.Lock()
	b.entries = nil
	b.mu.Unlock()
}

func (b *Buffer) Export() ([]byte, error) {
	return json.MarshalIndent(b.Entries(""), "", "  ")
}

type handler struct {
	buf     *Buffer
	console slog.Handler
	attrs   []slog.Attr
	prefix  string
}

func (h *handler) Enabled(context.Context, slog.Level) bool { return true }

func (h *handler) Handle(ctx context.Context, r slog.Record) error {
	data := map[string]any{}
	for _, a := range h.attrs {
		flatten(data, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		flatten(data, h.prefix, a)
		return true
	})
	if len(data) == 0 {
		data = nil
	}

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	h.buf.add(Entry{Timestamp: ts, Level: levelOf(r.Level), Message: r.Message, Data: data})

	if h.console != nil && h.console.Enabled(ctx, r.Level) {
		return h.console.Handle(ctx, r)
	}
	return nil
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		next.attrs = append(next.attrs, a)
	}
	if h.console != nil {
		next.console = h.console.WithAttrs(attrs)
	}
	return next
}

func (h *handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.prefix = h.prefix + name + "."
	if h.console != nil {
		next.console = h.console.WithGroup(name)
	}
	return next
}

func (h *handler) clone() *handler {
	return &handler{
		buf:     h.buf,
		console: h.console,
		attrs:   append([]slog.Attr(nil), h.attrs...),
		prefix:  h.prefix,
	}
}

func flatten(dst map[string]any, prefix string, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p = prefix + a.Key + "."
		}
		for _, ga := range v.Group() {
			flatten(dst, p, ga)
		}
		return
	}
	if a.Key == "" {
		return
	}
	val := v.Any()
	if err, ok := val.(error); ok {
		val = err.Error()
	}
	dst[prefix+a.Key] = val
}
