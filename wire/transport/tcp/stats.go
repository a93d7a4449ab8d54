package tcp

import (
	"time"

	"github.com/rcrowley/go-metrics"
)

// Stats holds the traffic counters of one socket in its own go-metrics
// registry, so sockets never share counters.
type Stats struct {
	registry     metrics.Registry
	bytesRead    metrics.Counter
	bytesWritten metrics.Counter
	connectTime  metrics.Timer
}

func newStats() *Stats {
	r := metrics.NewRegistry()
	return &Stats{
		registry:     r,
		bytesRead:    metrics.NewRegisteredCounter("bytes.read", r),
		bytesWritten: metrics.NewRegisteredCounter("bytes.written", r),
		connectTime:  metrics.NewRegisteredTimer("connect.time", r),
	}
}

// BytesRead returns the number of bytes received
func (s *Stats) BytesRead() int64 { return s.bytesRead.Count() }

// BytesWritten returns the number of bytes sent
func (s *Stats) BytesWritten() int64 { return s.bytesWritten.Count() }

// ConnectTime returns how long the connect took, 0 for accepted sockets
func (s *Stats) ConnectTime() time.Duration {
	return time.Duration(s.connectTime.Max())
}

// Registry exposes the underlying registry, e.g. for metrics.WriteOnce
func (s *Stats) Registry() metrics.Registry { return s.registry }
