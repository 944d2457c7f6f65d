package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture routes output to a buffer and restores the defaults on cleanup.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetVerbose(false)
		SetLevel(LevelOff)
		SetTimestamps(false)
		SetOutput(os.Stderr)
		now = time.Now
	})
	return &buf
}

func TestSilentByDefault(t *testing.T) {
	buf := capture(t)

	Debug("d")
	Info("i")
	Warn("w")
	Section("s")

	assert.Empty(t, buf.String())
	assert.False(t, IsVerbose())
}

func TestVerbosePrintsEveryLevel(t *testing.T) {
	buf := capture(t)
	SetVerbose(true)

	Debug("request %s", "GET")
	Info("info message %d", 42)
	Warn("warning message")
	Section("Search")

	assert.Equal(t,
		"[DEBUG] request GET\n[INFO] info message 42\n[WARN] warning message\n\n=== Search ===\n",
		buf.String())
}

func TestLevelFloor(t *testing.T) {
	buf := capture(t)
	SetLevel(LevelWarn)

	Debug("hidden")
	Info("hidden")
	Warn("shown")
	Section("hidden")

	assert.Equal(t, "[WARN] shown\n", buf.String())
	assert.True(t, Enabled(LevelWarn))
	assert.False(t, Enabled(LevelInfo))
	assert.False(t, Enabled(LevelOff))
}

func TestVerboseOverridesFloor(t *testing.T) {
	buf := capture(t)
	SetLevel(LevelWarn)
	SetVerbose(true)

	Debug("shown")
	assert.Equal(t, "[DEBUG] shown\n", buf.String())

	SetVerbose(false)
	Debug("hidden")
	assert.Equal(t, "[DEBUG] shown\n", buf.String())
}

func TestTimestamps(t *testing.T) {
	buf := capture(t)
	SetVerbose(true)
	SetTimestamps(true)
	now = func() time.Time { return time.Date(2026, 3, 14, 9, 5, 7, 250e6, time.UTC) }

	Info("listening")

	assert.Equal(t, "09:05:07.250 [INFO] listening\n", buf.String())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{" warn ", LevelWarn, false},
		{"off", LevelOff, false},
		{"loud", LevelOff, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "Level(9)", Level(9).String())
}

func TestLevelFromEnv(t *testing.T) {
	capture(t)
	env := map[string]string{}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	require.NoError(t, LevelFromEnv(lookup))
	assert.False(t, Enabled(LevelWarn))

	env[EnvLevelKey] = "info"
	require.NoError(t, LevelFromEnv(lookup))
	assert.True(t, Enabled(LevelInfo))
	assert.False(t, Enabled(LevelDebug))

	env[EnvLevelKey] = "chatty"
	assert.Error(t, LevelFromEnv(lookup))
	assert.True(t, Enabled(LevelInfo))
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "", Redact(""))
	assert.Equal(t, "***", Redact("abc"))
	assert.Equal(t, "********wxyz", Redact("eyJhbGciOi.payload.wxyz"))
}

func TestConcurrentAccess(t *testing.T) {
	capture(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetVerbose(true)
			Debug("concurrent %d", i)
			IsVerbose()
			SetLevel(LevelInfo)
			SetVerbose(false)
		}()
	}
	wg.Wait()
}
