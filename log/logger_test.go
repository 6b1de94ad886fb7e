package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var logMap map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logMap); err != nil {
		t.Fatalf("Failed to parse log output %q: %v", buf.String(), err)
	}
	return logMap
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(WithOutput(&buf), WithLevel(DebugLevel))

	logger.Debug().Msg("debug message")
	logMap := decode(t, &buf)
	if logMap["level"] != "debug" || logMap["message"] != "debug message" {
		t.Errorf("Expected debug message in log output, got: %v", logMap)
	}

	buf.Reset()
	logger.Info().Str("schema", "public").Int("relations", 2).Msg("introspected")
	logMap = decode(t, &buf)
	if logMap["schema"] != "public" || logMap["relations"].(float64) != 2 {
		t.Errorf("Expected fields in log output, got: %v", logMap)
	}
}

func TestLoggerSetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(WithOutput(&buf), WithLevel(DebugLevel))
	logger.SetLevel(WarnLevel)

	logger.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("Info message should not appear at WarnLevel, got: %q", buf.String())
	}

	logger.Warn().Msg("shown")
	if decode(t, &buf)["level"] != "warn" {
		t.Errorf("Expected warn message, got: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"", InfoLevel, false},
		{"debug", DebugLevel, false},
		{" WARN ", WarnLevel, false},
		{"verbose", InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRotateLogger(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "test.log")

	logger := NewRotateLogger(
		WithFilename(logFile),
		WithMaxSize(1),
		WithMaxAge(1),
		WithMaxBackups(1),
	)
	for i := 0; i < 100; i++ {
		logger.Info().Msg("test rotate log message")
	}

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		t.Error("Expected log file to exist")
	}
}

func TestGlobalLogger(t *testing.T) {
	old := Default()
	defer SetDefault(old)

	var buf bytes.Buffer
	SetDefault(NewLogger(WithOutput(&buf), WithLevel(InfoLevel)))

	Info().Msg("global info message")
	logMap := decode(t, &buf)
	if logMap["level"] != "info" || logMap["message"] != "global info message" {
		t.Errorf("Expected info message in global log output, got: %v", logMap)
	}

	buf.Reset()
	Debug().Msg("global debug message")
	if buf.Len() != 0 {
		t.Errorf("Debug message should not appear in InfoLevel logger, got: %q", buf.String())
	}
}
