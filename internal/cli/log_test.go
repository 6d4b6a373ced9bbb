package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
		{"warn at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Positioned 3 subplots")

	if !strings.Contains(buf.String(), "Positioned 3 subplots (") {
		t.Errorf("progress output = %q, want message with duration", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("loggerFromContext without a logger should return log.Default()")
	}
	//nolint:staticcheck // commands built outside cobra may carry no context
	if got := loggerFromContext(nil); got != log.Default() {
		t.Error("loggerFromContext(nil) should return log.Default()")
	}
}

func TestEngineWarningsReachCLILogger(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	e, err := c.newEngine(engineFlags{strategy: strategySolve, minExtent: 1e3})
	if err != nil {
		t.Fatal(err)
	}
	a, err := parseArray(centeredArray)
	if err != nil {
		t.Fatal(err)
	}
	// A minimum extent larger than the figure cannot be met by the solver.
	p := defaultTestParams()
	if _, err := e.Compute(a, p); err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if !strings.Contains(buf.String(), "falling back to grid layout") {
		t.Errorf("log output = %q, want fallback warning", buf.String())
	}
}
