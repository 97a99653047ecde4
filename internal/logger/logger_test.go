package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name           string
		config         *LoggerConfig
		expectError    bool
		validateOutput func(zerolog.Logger) bool
	}{
		{
			name: "valid production environment",
			config: &LoggerConfig{
				ServiceName:    "test-service",
				ServiceVersion: "1.0.0",
				Env:            "prod",
				Level:          "info",
				TimeField:      "timestamp",
				TimeFormat:     zerolog.TimeFormatUnix,
				Fields:         map[string]interface{}{"key": "value"},
			},
			validateOutput: func(zerolog.Logger) bool {
				return zerolog.GlobalLevel() == zerolog.InfoLevel
			},
		},
		{
			name: "invalid configuration - wrong env",
			config: &LoggerConfig{
				ServiceName: "bad-service",
				Env:         "wrong-env",
				Level:       "debug",
			},
			expectError: true,
		},
		{
			name: "invalid log level",
			config: &LoggerConfig{
				Env:   "prod",
				Level: "invalid-level",
			},
			expectError: true,
		},
		{
			name: "invalid output target",
			config: &LoggerConfig{
				Env:          "prod",
				OutputTarget: "syslog",
			},
			expectError: true,
		},
		{
			name: "valid staging environment on stderr",
			config: &LoggerConfig{
				Env:          "staging",
				Level:        "warn",
				OutputTarget: "stderr",
				TimeFormat:   "unix_ms",
				Stacktrace:   true,
			},
			validateOutput: func(zerolog.Logger) bool {
				return zerolog.GlobalLevel() == zerolog.WarnLevel
			},
		},
		{
			name: "valid development environment without debug",
			config: &LoggerConfig{
				Env:   "dev",
				Level: "info",
			},
			validateOutput: func(zerolog.Logger) bool {
				return zerolog.GlobalLevel() == zerolog.InfoLevel
			},
		},
		{
			name: "sampling enabled",
			config: &LoggerConfig{
				Env:      "prod",
				Level:    "error",
				Sampling: SamplingConfig{Burst: 5, PeriodMs: 100},
			},
			validateOutput: func(zerolog.Logger) bool {
				return zerolog.GlobalLevel() == zerolog.ErrorLevel
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			l, err := New(test.config)
			if test.expectError {
				assert.NotNil(t, err)
				return
			}
			assert.NoError(t, err)
			if test.validateOutput != nil {
				assert.True(t, test.validateOutput(l))
			}
		})
	}

	t.Run("debug log file creation", func(t *testing.T) {
		_, err := New(&LoggerConfig{Env: "dev", Level: "debug"})
		assert.NoError(t, err)

		_, statErr := os.Stat("logs/debug.log")
		assert.NoError(t, statErr)

		t.Cleanup(func() {
			if err := os.RemoveAll("logs"); err != nil {
				t.Logf("cleanup failed: %v", err)
			}
		})
	})
}

func TestSetDefaults_DependOnEnv(t *testing.T) {
	dev := &LoggerConfig{Env: "dev"}
	dev.setDefaults()
	assert.Equal(t, "debug", dev.Level)
	assert.Equal(t, "console", dev.Format)
	assert.True(t, dev.WithCaller)
	assert.False(t, dev.Stacktrace)

	prod := &LoggerConfig{}
	prod.setDefaults()
	assert.Equal(t, "prod", prod.Env)
	assert.Equal(t, "info", prod.Level)
	assert.Equal(t, "json", prod.Format)
	assert.True(t, prod.Stacktrace)
	assert.Equal(t, "productivity-hub", prod.ServiceName)
	assert.NotNil(t, prod.Fields)
}

func TestSampler_DropsInfoBurstButKeepsWarnings(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	l := zerolog.New(&buf).Sample(newSampler(SamplingConfig{Burst: 2, PeriodMs: 60_000}))

	for i := 0; i < 10; i++ {
		l.Info().Msg("chatty")
	}
	for i := 0; i < 3; i++ {
		l.Warn().Msg("important")
	}

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "chatty"))
	assert.Equal(t, 3, strings.Count(out, "important"))
}

func TestTimeLayout(t *testing.T) {
	assert.Equal(t, time.RFC3339, timeLayout("rfc3339"))
	assert.Equal(t, time.RFC3339Nano, timeLayout("rfc3339nano"))
	assert.Equal(t, zerolog.TimeFormatUnix, timeLayout("unix"))
	assert.Equal(t, zerolog.TimeFormatUnixMs, timeLayout("unix_ms"))
}
