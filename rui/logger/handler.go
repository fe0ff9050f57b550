package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeCommand   LogType = "CMD"
	TypeDB        LogType = "DB"
	TypeSystem    LogType = "SYS"
	TypeError     LogType = "ERR"
	TypeComponent LogType = "CMP"
)

type Options struct {
	Level     slog.Leveler
	AddSource bool
	NoColor   bool
}

// Handler prints one colourised line per record: time, level, log type, message and attributes.
type Handler struct {
	opts   Options
	mu     *sync.Mutex
	out    io.Writer
	attrs  []slog.Attr
	groups []string
}

func NewHandler(out io.Writer, opts Options) *Handler {
	if out == nil {
		out = os.Stdout
	}
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	return &Handler{opts: opts, mu: &sync.Mutex{}, out: out}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(slices.Clip(h.attrs), attrs...)
	return &c
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.groups = append(slices.Clip(h.groups), name)
	return &c
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	if shouldSkipLog(r.Message) {
		return nil
	}

	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})

	levelColor, levelText := levelStyle(r.Level)
	message := r.Message
	if cmd, user := find(attrs, "name"), find(attrs, "user_name"); cmd != "" && user != "" {
		message = fmt.Sprintf("%s [%s by %s]", message, cmd, user)
	}
	if status := find(attrs, "status"); status != "" {
		message = fmt.Sprintf("%s [Status: %s]", message, status)
	}
	if h.opts.AddSource && r.PC != 0 && r.Level >= slog.LevelError {
		if src := source(r.PC); src != "" {
			message = fmt.Sprintf("%s (%s)", message, src)
		}
	}

	prefix := strings.Join(h.groups, ".")
	var b strings.Builder
	for _, a := range attrs {
		if isInternalAttr(a.Key) || a.Equal(slog.Attr{}) {
			continue
		}
		key := a.Key
		if prefix != "" {
			key = prefix + "." + key
		}
		fmt.Fprintf(&b, " %s=%v", key, a.Value.Resolve())
	}

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	line := fmt.Sprintf("[Rui] [%s] [%s%s%s] [%s] %s%s",
		ts.Format("15:04:05"),
		levelColor, levelText, colorWhite,
		logType(attrs),
		message,
		b.String(),
	)
	if h.opts.NoColor {
		line = stripColors(line)
	} else {
		line = colorWhite + line + colorReset
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.out, line)
	return err
}

func levelStyle(l slog.Level) (string, string) {
	switch {
	case l >= slog.LevelError:
		return colorRed, "ERROR"
	case l >= slog.LevelWarn:
		return colorYellow, "WARN"
	case l >= slog.LevelInfo:
		return colorGreen, "INFO"
	default:
		return colorPurple, "DEBUG"
	}
}

// Gateway and rest chatter from disgo.
var skippedMessages = []string{
	"locking buckets",
	"unlocking buckets",
	"gateway event",
	"cleaning up bucket",
	"cleaned up rate limit buckets",
	"binary message received",
	"received gateway message",
	"locking gateway rate limiter",
	"unlocking gateway rate limiter",
	"sending gateway command",
	"new request",
	"new response",
	"locking rest bucket",
	"unlocking rest bucket",
	"rate limit response headers",
	"sending heartbeat",
}

func shouldSkipLog(msg string) bool {
	msg = strings.ToLower(msg)
	for _, skip := range skippedMessages {
		if strings.Contains(msg, skip) {
			return true
		}
	}
	return false
}

func logType(attrs []slog.Attr) LogType {
	switch find(attrs, "type") {
	case "cmd":
		return TypeCommand
	case "db":
		return TypeDB
	case "error":
		return TypeError
	case "component":
		return TypeComponent
	}
	return TypeSystem
}

func find(attrs []slog.Attr, key string) string {
	for i := len(attrs) - 1; i >= 0; i-- {
		if attrs[i].Key == key {
			return attrs[i].Value.String()
		}
	}
	return ""
}

func isInternalAttr(key string) bool {
	switch key {
	case "type", "name", "user_name", "status":
		return true
	}
	return false
}

func source(pc uintptr) string {
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if frame.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
}

func stripColors(s string) string {
	for _, c := range []string{colorReset, colorRed, colorGreen, colorYellow, colorPurple, colorWhite} {
		s = strings.ReplaceAll(s, c, "")
	}
	return s
}
