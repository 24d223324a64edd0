package metadata

import (
	"time"

	"github.com/rohmanhakim/nps-sites/pkg/urlutil"
	"go.uber.org/zap"
)

/*
Metadata Collected
- Fetch timestamps and durations
- HTTP status codes
- Content digests
- Cache hits, misses and persists

Logging Goals
- Make cache behaviour visible ("Using cache" / "Fetching")
- Failure diagnostics when upstream markup drifts

Metadata is write-only.
No component may read metadata to influence control flow.
*/

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)
	RecordFetch(event FetchEvent)
	RecordCache(event CacheEvent, key string, attrs []Attribute)
}

// Recorder is the MetadataSink that writes structured events to zap.
type Recorder struct {
	logger *zap.Logger
}

func NewRecorder(logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		logger: logger,
	}
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
	fields := []zap.Field{
		zap.Time("observed_at", observedAt),
		zap.String("package", packageName),
		zap.String("action", action),
		zap.Stringer("cause", cause),
		zap.String("details", urlutil.RedactSecrets(details)),
	}
	r.logger.Warn("operation failed", append(fields, attrFields(attrs)...)...)
}

func (r *Recorder) RecordFetch(event FetchEvent) {
	r.logger.Debug("fetched",
		zap.String("url", urlutil.RedactSecrets(event.FetchURL)),
		zap.Int("http_status", event.HTTPStatus),
		zap.Duration("duration", event.Duration),
		zap.String("content_type", event.ContentType),
		zap.Int("size_bytes", event.SizeBytes),
		zap.String("digest", event.Digest),
	)
}

func (r *Recorder) RecordCache(event CacheEvent, key string, attrs []Attribute) {
	fields := append([]zap.Field{zap.String("key", urlutil.RedactSecrets(key))}, attrFields(attrs)...)
	switch event {
	case CacheHit:
		r.logger.Info("Using cache", fields...)
	case CacheMiss:
		r.logger.Info("Fetching", fields...)
	default:
		r.logger.Debug("cache "+string(event), fields...)
	}
}

func attrFields(attrs []Attribute) []zap.Field {
	fields := make([]zap.Field, 0, len(attrs))
	for _, attr := range attrs {
		fields = append(fields, zap.String(string(attr.Key), urlutil.RedactSecrets(attr.Value)))
	}
	return fields
}

// NoopSink, struct that implements metadata.MetadataSink but does nothing
// Callers (or tests) decide whether to inject Recorder or NoopSink

type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordFetch(event FetchEvent) {}

func (n *NoopSink) RecordCache(event CacheEvent, key string, attrs []Attribute) {}
