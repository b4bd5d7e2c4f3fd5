package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

type Field struct {
	Key   string
	Value any
}

// Values under these keys never reach the log file.
var redactedKeys = map[string]struct{}{
	"token":         {},
	"authorization": {},
	"api_token":     {},
}

const redacted = "[redacted]"

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Enabled(level Level) bool
}

type Option func(*sink)

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *sink) {
		if now != nil {
			s.now = now
		}
	}
}

// sink is shared by a logger and every logger derived from it with With.
type sink struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

type logfmtLogger struct {
	sink   *sink
	level  Level
	prefix string
}

func New(out io.Writer, level Level, opts ...Option) Logger {
	if out == nil {
		out = os.Stdout
	}
	s := &sink{out: out, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return &logfmtLogger{sink: s, level: level}
}

func Nop() Logger {
	return &logfmtLogger{sink: &sink{out: io.Discard, now: time.Now}, level: Error + 1}
}

func (l *logfmtLogger) Enabled(level Level) bool {
	if l == nil {
		return false
	}
	return level >= l.level
}

// With pre-renders fields once; derived loggers only append to the prefix.
func (l *logfmtLogger) With(fields ...Field) Logger {
	if l == nil {
		return Nop()
	}
	var b strings.Builder
	b.WriteString(l.prefix)
	writeFields(&b, fields)
	return &logfmtLogger{sink: l.sink, level: l.level, prefix: b.String()}
}

func (l *logfmtLogger) Debug(msg string, fields ...Field) { l.log(Debug, msg, fields) }
func (l *logfmtLogger) Info(msg string, fields ...Field)  { l.log(Info, msg, fields) }
func (l *logfmtLogger) Warn(msg string, fields ...Field)  { l.log(Warn, msg, fields) }
func (l *logfmtLogger) Error(msg string, fields ...Field) { l.log(Error, msg, fields) }

func (l *logfmtLogger) log(level Level, msg string, fields []Field) {
	if !l.Enabled(level) {
		return
	}
	var b strings.Builder
	b.WriteString("ts=")
	b.WriteString(l.sink.now().UTC().Format(time.RFC3339Nano))
	b.WriteString(" level=")
	b.WriteString(levelString(level))
	b.WriteString(" msg=")
	b.WriteString(quoteIfNeeded(msg))
	b.WriteString(l.prefix)
	writeFields(&b, fields)
	b.WriteByte('\n')

	// one write per line; concurrent appends to the file never interleave
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	_, _ = io.WriteString(l.sink.out, b.String())
}

func writeFields(b *strings.Builder, fields []Field) {
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteByte('=')
		if _, ok := redactedKeys[strings.ToLower(key)]; ok {
			b.WriteString(redacted)
			continue
		}
		b.WriteString(formatValue(field.Value))
	}
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return quoteIfNeeded(v)
	case []byte:
		return quoteIfNeeded(string(v))
	case time.Duration:
		return v.String()
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case error:
		return quoteIfNeeded(v.Error())
	case fmt.Stringer:
		return quoteIfNeeded(v.String())
	case bool:
		return strconv.FormatBool(v)
	case int, int64, int32, uint, uint64, uint32, float64, float32:
		return fmt.Sprintf("%v", v)
	default:
		return quoteIfNeeded(fmt.Sprintf("%v", v))
	}
}

// quoteIfNeeded quotes values with separators or non-printable runes. Session
// attributes end up in log lines and may carry escape sequences.
func quoteIfNeeded(value string) string {
	if value == "" {
		return `""`
	}
	if strings.ContainsAny(value, " \"=") || strings.IndexFunc(value, func(r rune) bool {
		return !unicode.IsPrint(r)
	}) >= 0 {
		return strconv.Quote(value)
	}
	return value
}

func levelString(level Level) string {
	switch level {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

func ParseLevel(raw string) Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return Debug
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

// NewRequestID returns an id used to correlate a GraphQL operation across log
// lines and the request header sent to the backend.
func NewRequestID() string {
	return uuid.NewString()
}

// OpenFile appends logfmt lines to path, creating parent directories. The UI
// logs here because the terminal renderer owns stdout.
func OpenFile(path string, level Level) (Logger, io.Closer, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil, fmt.Errorf("log path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return New(file, level), file, nil
}

// Component tags every line of the returned logger with the emitting part of
// the program.
func Component(logger Logger, name string) Logger {
	if logger == nil {
		return Nop()
	}
	return logger.With(F("component", name))
}

func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}
