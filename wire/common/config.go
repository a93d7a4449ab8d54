package common

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Transport configuration
// --------------------------------------------------------------------------

// SocketConf holds generic socket buffer settings
type SocketConf struct {
	// WriteBufferSize is the SO_SNDBUF size in bytes (0 = OS default)
	WriteBufferSize int
	// ReadBufferSize is the SO_RCVBUF size in bytes (0 = OS default)
	ReadBufferSize int
}

// TCPConf holds TCP specific settings
type TCPConf struct {
	// TCPNoDelay disables Nagle's algorithm
	TCPNoDelay bool
	// TCPKeepAliveSec enables keep-alive with the given period (0 = disabled)
	TCPKeepAliveSec int
	// TCPLingerSec sets SO_LINGER (-1 = OS default)
	TCPLingerSec int
}

// TransportConfig describes how to reach the broker and how the socket is tuned.
type TransportConfig struct {
	Host string
	Port int

	// ConnectTimeoutMs bounds the connect attempt (0 = no timeout)
	ConnectTimeoutMs int
	// SoTimeoutMs bounds each blocking read/write (0 = block forever)
	SoTimeoutMs int
	// ReuseAddress enables SO_REUSEADDR on bind
	ReuseAddress bool

	SocketConf SocketConf
	TCPConf    TCPConf
}

// DefaultTransportConfig returns the defaults used by the CLI and by Dial
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		Host:             "localhost",
		Port:             61616,
		ConnectTimeoutMs: 5000,
		SoTimeoutMs:      0,
		ReuseAddress:     true,
		TCPConf: TCPConf{
			TCPNoDelay:   true,
			TCPLingerSec: -1,
		},
	}
}

// Address returns host:port
func (c *TransportConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ConnectTimeout returns ConnectTimeoutMs as a duration
func (c *TransportConfig) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutMs) * time.Millisecond
}

// String returns a formatted string representation of the transport configuration
func (c *TransportConfig) String() string {
	var sb strings.Builder
	w := newConfigWriter(&sb)

	w.section("Transport")
	w.field("Address", c.Address())
	w.field("Connect Timeout", fmt.Sprintf("%d ms", c.ConnectTimeoutMs))
	w.field("Socket Timeout", fmt.Sprintf("%d ms", c.SoTimeoutMs))
	w.field("Reuse Address", strconv.FormatBool(c.ReuseAddress))

	w.section("Socket")
	w.field("Write Buffer", fmt.Sprintf("%d bytes", c.SocketConf.WriteBufferSize))
	w.field("Read Buffer", fmt.Sprintf("%d bytes", c.SocketConf.ReadBufferSize))
	w.field("TCP NoDelay", strconv.FormatBool(c.TCPConf.TCPNoDelay))
	w.field("TCP KeepAlive", fmt.Sprintf("%d sec", c.TCPConf.TCPKeepAliveSec))
	w.field("TCP Linger", fmt.Sprintf("%d sec", c.TCPConf.TCPLingerSec))

	return sb.String()
}

// --------------------------------------------------------------------------
// Wire format configuration
// --------------------------------------------------------------------------

// WireFormatConfig selects the protocol version and encoding options.
// It is the result of the (external) version negotiation.
type WireFormatConfig struct {
	// Version is the negotiated OpenWire protocol version
	Version int
	// TightEncoding selects the two-pass bit-packed encoding
	TightEncoding bool
	// CacheEnabled turns on the object reference cache (tight encoding only)
	CacheEnabled bool
	// CacheSize is the number of slots in each cache direction
	CacheSize int
	// MaxFrameSize rejects inbound frames larger than this many bytes
	MaxFrameSize int
}

const (
	DefaultWireFormatVersion = 2
	DefaultCacheSize         = 1024
	DefaultMaxFrameSize      = 64 * 1024 * 1024

	// MaxCacheSize is bounded by the int16 index on the wire
	MaxCacheSize = 1<<15 - 1
)

// DefaultWireFormatConfig returns the defaults: newest version, tight encoding with cache
func DefaultWireFormatConfig() WireFormatConfig {
	return WireFormatConfig{
		Version:       DefaultWireFormatVersion,
		TightEncoding: true,
		CacheEnabled:  true,
		CacheSize:     DefaultCacheSize,
		MaxFrameSize:  DefaultMaxFrameSize,
	}
}

// Validate checks the ranges that do not depend on the marshaller tables
func (c *WireFormatConfig) Validate() error {
	if c.Version <= 0 {
		return Argumentf(ReasonInvalidValue, "WireFormatConfig.Validate", c.Version, "version must be positive")
	}
	if c.CacheEnabled && (c.CacheSize <= 0 || c.CacheSize > MaxCacheSize) {
		return Argumentf(ReasonInvalidValue, "WireFormatConfig.Validate", c.CacheSize, "cache size must be in [1, %d]", MaxCacheSize)
	}
	if c.MaxFrameSize <= 0 {
		return Argumentf(ReasonInvalidValue, "WireFormatConfig.Validate", c.MaxFrameSize, "max frame size must be positive")
	}
	return nil
}

// String returns a formatted string representation of the wire format configuration
func (c *WireFormatConfig) String() string {
	var sb strings.Builder
	w := newConfigWriter(&sb)

	w.section("Wire Format")
	w.field("Version", strconv.Itoa(c.Version))
	w.field("Tight Encoding", strconv.FormatBool(c.TightEncoding))
	w.field("Cache Enabled", strconv.FormatBool(c.CacheEnabled))
	w.field("Cache Size", strconv.Itoa(c.CacheSize))
	w.field("Max Frame Size", fmt.Sprintf("%d bytes", c.MaxFrameSize))

	return sb.String()
}

// --------------------------------------------------------------------------
// Client configuration
// --------------------------------------------------------------------------

type ClientConfig struct {
	Transport  TransportConfig
	WireFormat WireFormatConfig

	// RequestTimeoutSecond bounds a request/response round trip (0 = wait for ctx only)
	RequestTimeoutSecond int

	// Logging configuration
	LogLevel string
}

// DefaultClientConfig combines the transport and wire format defaults
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Transport:            DefaultTransportConfig(),
		WireFormat:           DefaultWireFormatConfig(),
		RequestTimeoutSecond: 10,
		LogLevel:             "info",
	}
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder
	sb.WriteString(c.Transport.String())
	sb.WriteString(c.WireFormat.String())

	w := newConfigWriter(&sb)
	w.section("Client")
	w.field("Request Timeout", fmt.Sprintf("%d sec", c.RequestTimeoutSecond))
	w.field("Log Level", c.LogLevel)

	return sb.String()
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// configWriter keeps the section/field layout consistent across all configs
type configWriter struct {
	sb *strings.Builder
}

func newConfigWriter(sb *strings.Builder) configWriter {
	return configWriter{sb: sb}
}

func (w configWriter) section(title string) {
	w.sb.WriteString("\n")
	w.sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
}

func (w configWriter) field(name, value string) {
	w.sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
}
