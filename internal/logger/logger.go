// Package logger provides leveled diagnostic logging for the ServiLink CLI.
// Nothing is printed by default. The --verbose flag turns on every level,
// and SERVILINK_LOG_LEVEL sets a quieter floor such as warn.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level orders log messages by severity.
type Level int

// Levels from most to least chatty. LevelOff silences everything.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelOff
)

// EnvLevelKey names the environment variable read by LevelFromEnv.
const EnvLevelKey = "SERVILINK_LOG_LEVEL"

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelOff:   "OFF",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel converts a name such as "debug" or "WARN" to a Level.
func ParseLevel(s string) (Level, error) {
	for l, name := range levelNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return l, nil
		}
	}
	return LevelOff, fmt.Errorf("unknown log level %q", s)
}

var (
	mu         sync.RWMutex
	floor                = LevelOff
	verbose    bool
	timestamps bool
	output     io.Writer = os.Stderr
	now                  = time.Now
)

// SetVerbose enables or disables verbose logging. Verbose mode prints every
// level regardless of the floor set with SetLevel.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetLevel sets the lowest level printed when verbose mode is off.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	floor = l
}

// LevelFromEnv applies SERVILINK_LOG_LEVEL when lookup finds it.
// An unparsable value leaves the floor unchanged and is returned as an error.
func LevelFromEnv(lookup func(string) (string, bool)) error {
	v, ok := lookup(EnvLevelKey)
	if !ok || v == "" {
		return nil
	}
	l, err := ParseLevel(v)
	if err != nil {
		return err
	}
	SetLevel(l)
	return nil
}

// SetTimestamps prefixes every line with the wall clock time when on.
// Useful for long running servers such as `servilink mcp`.
func SetTimestamps(on bool) {
	mu.Lock()
	defer mu.Unlock()
	timestamps = on
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Enabled reports whether a message at l would be printed.
func Enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled(l)
}

func enabled(l Level) bool {
	if l >= LevelOff {
		return false
	}
	return verbose || l >= floor
}

func logf(l Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled(l) {
		return
	}
	var prefix string
	if timestamps {
		prefix = now().Format("15:04:05.000") + " "
	}
	fmt.Fprintf(output, prefix+"["+l.String()+"] "+format+"\n", args...)
}

// Debug prints a message at LevelDebug.
func Debug(format string, args ...any) { logf(LevelDebug, format, args...) }

// Info prints a message at LevelInfo.
func Info(format string, args ...any) { logf(LevelInfo, format, args...) }

// Warn prints a message at LevelWarn.
func Warn(format string, args ...any) { logf(LevelWarn, format, args...) }

// Section prints a section header when debug output is on.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if enabled(LevelDebug) {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Redact masks all but the last four characters of a secret so bearer
// tokens can appear in debug output.
func Redact(secret string) string {
	const keep = 4
	if len(secret) <= keep {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", 8) + secret[len(secret)-keep:]
}
