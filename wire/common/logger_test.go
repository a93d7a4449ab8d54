package common

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/lni/dragonboat/v4/logger"
)

// TestLoggerFormat tests the line layout and the level filter
func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("transport/tcp", &buf)

	l.Debugf("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("debug line written at info level: %q", buf.String())
	}

	l.Infof("connected to %s", "127.0.0.1:61616")
	line := buf.String()
	for _, part := range []string{"INFO ", "| transport/tcp ", "| connected to 127.0.0.1:61616"} {
		if !strings.Contains(line, part) {
			t.Errorf("expected %q in %q", part, line)
		}
	}

	buf.Reset()
	l.SetLevel(logger.DEBUG)
	l.Debugf("shown")
	if !strings.Contains(buf.String(), "DEBUG") {
		t.Errorf("expected a debug line, got %q", buf.String())
	}
}

// TestLoggerErrorTrace tests that errors are logged with the positions they passed
func TestLoggerErrorTrace(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("openwire", &buf)

	err := Protocolf(ReasonUnknownCacheID, "TightUnmarshalCachedObject", "reference to empty cache slot %d", 3)
	l.Warningf("failed to unmarshal frame: %v", fmt.Errorf("reader: %w", Observe(err)))
	if !strings.Contains(buf.String(), "(at "+err.Trace()+")") {
		t.Errorf("expected trace %q in %q", err.Trace(), buf.String())
	}
	if !strings.Contains(buf.String(), "logger_test.go") {
		t.Errorf("expected a mark in logger_test.go, got %q", buf.String())
	}

	buf.Reset()
	l.Warningf("plain %v", fmt.Errorf("boom"))
	if strings.Contains(buf.String(), "(at ") {
		t.Errorf("unexpected trace for a foreign error: %q", buf.String())
	}
}
