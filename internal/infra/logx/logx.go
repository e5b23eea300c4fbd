// Package logx writes JSON-lines logs for a process whose terminal is owned
// by the TUI. Registered secrets never reach the output.
package logx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"debug", "info", "warn", "error"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "debug"
	}
	return levelNames[l]
}

// ParseLevel maps a config value onto a Level. Unknown values yield LevelWarn.
func ParseLevel(s string) Level {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if s == name {
			return Level(i)
		}
	}
	return LevelWarn
}

// Fields carries structured context for a single entry. Keys are written
// next to ts/level/msg; colliding keys get a "field." prefix.
type Fields map[string]any

// maxValueLen bounds messages and string fields unless verbose is on.
const maxValueLen = 2 * 1024

type logger struct {
	mu       sync.RWMutex
	minLevel Level
	out      io.Writer
	verbose  bool
	secrets  map[string]struct{}
	redactor *strings.Replacer

	// writeMu keeps lines from concurrent commands from interleaving.
	writeMu sync.Mutex
}

var std = &logger{minLevel: LevelWarn, out: io.Discard, secrets: map[string]struct{}{}}

// SetOutput sets the destination for logs.
func SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	std.mu.Lock()
	std.out = w
	std.mu.Unlock()
}

// SetMinLevel sets the minimum level to emit.
func SetMinLevel(l Level) { std.mu.Lock(); std.minLevel = l; std.mu.Unlock() }

// SetVerbose disables truncation of long messages and fields.
func SetVerbose(v bool) { std.mu.Lock(); std.verbose = v; std.mu.Unlock() }

// OpenFile opens path for appending, creating parent directories. The
// caller installs it with SetOutput and closes it.
func OpenFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// RegisterSecret makes s show up as [REDACTED]. Registering the same value
// again is a no-op, so callers may register on every read.
func RegisterSecret(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	std.mu.Lock()
	defer std.mu.Unlock()
	if _, ok := std.secrets[s]; ok {
		return
	}
	std.secrets[s] = struct{}{}
	pairs := make([]string, 0, 2*len(std.secrets))
	for sec := range std.secrets {
		pairs = append(pairs, sec, "[REDACTED]")
	}
	std.redactor = strings.NewReplacer(pairs...)
}

// StdlogWriter turns each line written by the standard logger into a JSON
// entry at level. Install it with log.SetOutput.
func StdlogWriter(level Level, w io.Writer) io.Writer {
	if w == nil {
		w = os.Stderr
	}
	return &stdlogWriter{level: level, w: w}
}

type stdlogWriter struct {
	level Level
	w     io.Writer
}

func (sw *stdlogWriter) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(p, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		if err := std.emit(sw.w, sw.level, string(line), nil); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

func Debugf(format string, args ...any) { std.logf(LevelDebug, format, args...) }
func Infof(format string, args ...any)  { std.logf(LevelInfo, format, args...) }
func Warnf(format string, args ...any)  { std.logf(LevelWarn, format, args...) }
func Errorf(format string, args ...any) { std.logf(LevelError, format, args...) }

// Infow logs msg with structured fields.
func Infow(msg string, f Fields) { _ = std.emit(nil, LevelInfo, msg, f) }

// Errorw logs msg with structured fields at error level.
func Errorw(msg string, f Fields) { _ = std.emit(nil, LevelError, msg, f) }

func (l *logger) logf(lvl Level, format string, args ...any) {
	if !l.enabled(lvl) {
		return
	}
	_ = l.emit(nil, lvl, fmt.Sprintf(format, args...), nil)
}

func (l *logger) enabled(lvl Level) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return lvl >= l.minLevel
}

// emit writes one entry to w, or to the configured output when w is nil.
func (l *logger) emit(w io.Writer, lvl Level, msg string, fields Fields) error {
	l.mu.RLock()
	if w == nil {
		w = l.out
	}
	minLevel, verbose, redactor := l.minLevel, l.verbose, l.redactor
	l.mu.RUnlock()
	if lvl < minLevel {
		return nil
	}

	clean := func(s string) string {
		if redactor != nil {
			s = redactor.Replace(s)
		}
		if !verbose {
			s = truncate(s, maxValueLen)
		}
		return s
	}

	e := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		if k == "ts" || k == "level" || k == "msg" {
			k = "field." + k
		}
		if s, ok := v.(string); ok {
			v = clean(s)
		}
		e[k] = v
	}
	e["ts"] = time.Now().Format(time.RFC3339Nano)
	e["level"] = lvl.String()
	e["msg"] = clean(msg)

	b, err := json.Marshal(e)
	if err != nil {
		b = []byte(fmt.Sprintf(`{"level":%q,"msg":%q,"error":%q}`, lvl, clean(msg), err.Error()))
	}
	b = append(b, '\n')

	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	_, err = w.Write(b)
	return err
}

// truncate shortens s to about limit bytes, keeping the tail for context and
// never splitting a UTF-8 sequence.
func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	const marker = "… [truncated] "
	const tailLen = 16
	if limit <= len(marker)+tailLen {
		return validPrefix(s, limit)
	}
	head := validPrefix(s, limit-len(marker)-tailLen)
	tail := s[len(s)-tailLen:]
	for len(tail) > 0 && !utf8.RuneStart(tail[0]) {
		tail = tail[1:]
	}
	return head + marker + tail
}

func validPrefix(s string, n int) string {
	for n > 0 && n < len(s) && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
