package logs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bingbr/bard/riot"
)

const defaultInsertTimeout = 2 * time.Second

// Entry is one persisted log record. String values have the Riot credential masked.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Attrs   map[string]any
}

type Sink interface {
	InsertLog(ctx context.Context, entry Entry) error
}

// Handler is a slog.Handler that writes records to a Sink.
type Handler struct {
	sink    Sink
	level   slog.Leveler
	timeout time.Duration
	attrs   []groupedAttr
	groups  []string
}

type groupedAttr struct {
	groups []string
	attr   slog.Attr
}

func NewHandler(sink Sink, level slog.Leveler, timeout time.Duration) *Handler {
	if level == nil {
		level = slog.LevelInfo
	}
	if timeout <= 0 {
		timeout = defaultInsertTimeout
	}
	return &Handler{sink: sink, level: level, timeout: timeout}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return h != nil && level >= h.level.Level()
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if h == nil || h.sink == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	data := map[string]any{}
	for _, ga := range h.attrs {
		put(data, ga.groups, ga.attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		put(data, h.groups, attr)
		return true
	})

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	err := h.sink.InsertLog(ctx, Entry{
		Time:    r.Time,
		Level:   r.Level.String(),
		Message: riot.RedactAPIKey(r.Message),
		Attrs:   data,
	})
	if err != nil {
		return fmt.Errorf("insert log: %w", err)
	}
	return nil
}

// WithAttrs binds attrs to the groups open at the time of the call, so a
// later WithGroup does not move them.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]groupedAttr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, attr := range attrs {
		next.attrs = append(next.attrs, groupedAttr{groups: h.groups, attr: attr})
	}
	return &next
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = append(h.groups[:len(h.groups):len(h.groups)], name)
	return &next
}

func put(m map[string]any, groups []string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}
	for _, g := range groups {
		m = subMap(m, g)
	}
	if attr.Value.Kind() != slog.KindGroup {
		m[attr.Key] = value(attr.Value)
		return
	}
	if attr.Key != "" {
		m = subMap(m, attr.Key)
	}
	for _, child := range attr.Value.Group() {
		put(m, nil, child)
	}
}

func subMap(m map[string]any, key string) map[string]any {
	sub, ok := m[key].(map[string]any)
	if !ok {
		sub = map[string]any{}
		m[key] = sub
	}
	return sub
}

func value(v slog.Value) any {
	switch v.Kind() {
	case slog.KindBool:
		return v.Bool()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindInt64:
		return v.Int64()
	case slog.KindUint64:
		return v.Uint64()
	case slog.KindTime:
		return v.Time().UTC()
	case slog.KindString:
		return riot.RedactAPIKey(v.String())
	}
	switch typed := v.Any().(type) {
	case error:
		return riot.RedactAPIKey(typed.Error())
	case fmt.Stringer:
		return riot.RedactAPIKey(typed.String())
	default:
		return typed
	}
}
