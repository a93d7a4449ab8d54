package format

import (
	"io"

	"github.com/VictoriaMetrics/metrics"
)

// Process wide codec counters. They are registered in the default
// VictoriaMetrics set and exposed through WritePrometheus.
var (
	framesMarshalled   = metrics.NewCounter(`owire_frames_total{direction="out"}`)
	framesUnmarshalled = metrics.NewCounter(`owire_frames_total{direction="in"}`)
	bytesMarshalled    = metrics.NewCounter(`owire_frame_bytes_total{direction="out"}`)
	bytesUnmarshalled  = metrics.NewCounter(`owire_frame_bytes_total{direction="in"}`)
	cacheHits          = metrics.NewCounter(`owire_cache_lookups_total{result="hit"}`)
	cacheMisses        = metrics.NewCounter(`owire_cache_lookups_total{result="miss"}`)
	protocolErrors     = metrics.NewCounter(`owire_protocol_errors_total`)
	frameSizes         = metrics.NewHistogram(`owire_frame_size_bytes`)
)

// WritePrometheus writes all codec metrics in Prometheus text format
func WritePrometheus(w io.Writer) {
	metrics.WritePrometheus(w, false)
}
