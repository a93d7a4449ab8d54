package common

import (
	"strings"
	"testing"
)

// TestWireFormatConfigValidate tests the range checks of the wire format config
func TestWireFormatConfigValidate(t *testing.T) {
	valid := DefaultWireFormatConfig()
	if err := valid.Validate(); err != nil {
		t.Fatalf("defaults must be valid: %v", err)
	}

	tests := []struct {
		name   string
		modify func(c *WireFormatConfig)
		valid  bool
	}{
		{"ZeroVersion", func(c *WireFormatConfig) { c.Version = 0 }, false},
		{"ZeroCache", func(c *WireFormatConfig) { c.CacheSize = 0 }, false},
		{"CacheTooLarge", func(c *WireFormatConfig) { c.CacheSize = MaxCacheSize + 1 }, false},
		{"MaxCache", func(c *WireFormatConfig) { c.CacheSize = MaxCacheSize }, true},
		{"ZeroCacheDisabled", func(c *WireFormatConfig) { c.CacheEnabled = false; c.CacheSize = 0 }, true},
		{"ZeroFrameSize", func(c *WireFormatConfig) { c.MaxFrameSize = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultWireFormatConfig()
			tt.modify(&c)
			err := c.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && KindOf(err) != ArgumentError {
				t.Errorf("expected argument error, got %v", err)
			}
		})
	}
}

// TestConfigString tests the diagnostic rendering of the client config
func TestConfigString(t *testing.T) {
	c := DefaultClientConfig()
	s := c.String()
	for _, part := range []string{"TRANSPORT", "localhost:61616", "WIRE FORMAT", "Cache Size", "CLIENT", "10 sec"} {
		if !strings.Contains(s, part) {
			t.Errorf("expected %q in:\n%s", part, s)
		}
	}
}

// TestParseLogLevel tests the accepted log level names
func TestParseLogLevel(t *testing.T) {
	for _, level := range []string{"debug", "INFO", " warn ", "warning", "error", ""} {
		if _, err := ParseLogLevel(level); err != nil {
			t.Errorf("ParseLogLevel(%q) failed: %v", level, err)
		}
	}
	if _, err := ParseLogLevel("verbose"); err == nil {
		t.Errorf("expected an error for an unknown level")
	}
	if err := InitLoggers("chatty"); err == nil {
		t.Errorf("expected InitLoggers to reject an unknown level")
	}
}
