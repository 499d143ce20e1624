package logging

import (
	"bytes"
	"os"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/grovetools/catalogd/config"
	"github.com/sirupsen/logrus"
)

func TestNewLogger(t *testing.T) {
	t.Setenv("CATALOGD_HOME", t.TempDir())

	logger := NewLogger("test-component")
	if logger == nil {
		t.Fatal("Expected logger to be created")
	}

	if logger.Data["component"] != "test-component" {
		t.Errorf("Expected component to be 'test-component', got %v", logger.Data["component"])
	}

	if again := NewLogger("test-component"); again != logger {
		t.Error("Expected the same logger for the same component")
	}
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&TextFormatter{Config: FormatConfig{}})

	entry := logger.WithField("component", "test")
	entry.Info("Test message")

	output := buf.String()

	if !strings.Contains(output, "[INFO]") {
		t.Errorf("Expected output to contain [INFO], got: %s", output)
	}
	if !strings.Contains(output, "test") {
		t.Errorf("Expected output to contain the component, got: %s", output)
	}
	if !strings.Contains(output, "Test message") {
		t.Errorf("Expected output to contain 'Test message', got: %s", output)
	}
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		config  FormatConfig
		entry   *logrus.Entry
		want    []string // Parts that should be in the output
		notWant []string // Parts that should NOT be in the output
	}{
		{
			name:   "default format",
			config: FormatConfig{},
			entry: &logrus.Entry{
				Level:   logrus.InfoLevel,
				Message: "test message",
				Data: logrus.Fields{
					"component": "test-component",
					"key1":      "value1",
				},
			},
			want: []string{"[INFO]", "test-component", "test message", "key1=value1"},
		},
		{
			name: "simple format",
			config: FormatConfig{
				DisableTimestamp: true,
				DisableComponent: true,
			},
			entry: &logrus.Entry{
				Level:   logrus.WarnLevel,
				Message: "warning message",
				Data: logrus.Fields{
					"component": "test-component",
				},
			},
			want:    []string{"[WARN]", "warning message"},
			notWant: []string{"test-component"},
		},
		{
			name:   "caller information with function name",
			config: FormatConfig{},
			entry: func() *logrus.Entry {
				logger := logrus.New()
				logger.SetReportCaller(true)
				return &logrus.Entry{
					Logger:  logger,
					Level:   logrus.InfoLevel,
					Message: "test message with caller",
					Data: logrus.Fields{
						"component": "test-component",
					},
					Caller: &runtime.Frame{
						File:     "/path/to/file.go",
						Line:     42,
						Function: "github.com/example/package.TestFunction",
					},
				}
			}(),
			want: []string{"[INFO]", "test message with caller", "[file.go:42 package.TestFunction]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := &TextFormatter{Config: tt.config}
			tt.entry.Time = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

			output, err := formatter.Format(tt.entry)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			outputStr := string(output)
			for _, want := range tt.want {
				if !strings.Contains(outputStr, want) {
					t.Errorf("Expected output to contain '%s', got: %s", want, outputStr)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(outputStr, notWant) {
					t.Errorf("Expected output NOT to contain '%s', got: %s", notWant, outputStr)
				}
			}
		})
	}
}

func TestTextFormatterFieldOrder(t *testing.T) {
	formatter := &TextFormatter{Config: FormatConfig{DisableTimestamp: true}}
	entry := &logrus.Entry{
		Level:   logrus.InfoLevel,
		Message: "request",
		Data:    logrus.Fields{"status": 200, "method": "GET", "path": "/schema"},
	}

	output, err := formatter.Format(entry)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := "[INFO] request method=GET path=/schema status=200\n"
	if string(output) != want {
		t.Errorf("Expected %q, got %q", want, string(output))
	}
}

func TestLogLevelFromEnvironment(t *testing.T) {
	t.Setenv("CATALOGD_HOME", t.TempDir())
	t.Setenv("CATALOGD_LOG_LEVEL", "debug")

	logger := NewLogger("env-level-test")
	if logger.Logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %s", logger.Logger.GetLevel())
	}

	t.Setenv("CATALOGD_LOG_LEVEL", "not-a-level")
	fallback := NewLogger("env-level-fallback-test")
	if fallback.Logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("Expected info level fallback, got %s", fallback.Logger.GetLevel())
	}
}

func TestSetLevel(t *testing.T) {
	t.Setenv("CATALOGD_HOME", t.TempDir())

	a := NewLogger("set-level-a")
	b := NewLogger("set-level-b")

	SetLevel(logrus.ErrorLevel)
	defer SetLevel(logrus.InfoLevel)

	if a.Logger.GetLevel() != logrus.ErrorLevel || b.Logger.GetLevel() != logrus.ErrorLevel {
		t.Errorf("Expected both loggers at error level, got %s and %s", a.Logger.GetLevel(), b.Logger.GetLevel())
	}
}

func TestApplyConfig(t *testing.T) {
	t.Setenv("CATALOGD_HOME", t.TempDir())
	os.Unsetenv("CATALOGD_LOG_LEVEL")

	logger := NewLogger("apply-config-test")
	defer SetLevel(logrus.InfoLevel)

	cfg, err := config.LoadFromBytes([]byte("logging:\n  level: warn\n"), config.FormatYAML)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := ApplyConfig(cfg); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if logger.Logger.GetLevel() != logrus.WarnLevel {
		t.Errorf("Expected warn level, got %s", logger.Logger.GetLevel())
	}
}

func TestFileSink(t *testing.T) {
	t.Setenv("CATALOGD_HOME", t.TempDir())

	logger := NewLogger("file-sink-test")
	logger.Info("written to disk")

	data, err := os.ReadFile(LogFilePath("file-sink-test", time.Now()))
	if err != nil {
		t.Fatalf("Expected log file to exist: %v", err)
	}
	if !strings.Contains(string(data), "written to disk") {
		t.Errorf("Expected log file to contain the message, got: %s", data)
	}
}

func TestPrettyLogger(t *testing.T) {
	var buf bytes.Buffer
	pretty := NewPrettyLogger().WithWriter(&buf)

	pretty.Success("Added Tom")
	pretty.Field("colour", "Grey")

	output := buf.String()
	for _, want := range []string{"✓", "Added Tom", "colour", "Grey"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain '%s', got: %s", want, output)
		}
	}
}
