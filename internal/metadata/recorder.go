package metadata

import (
	"time"

	"github.com/sirupsen/logrus"
)

/*
Metadata Collected
- Fetch timestamps, durations and HTTP status codes
- Cache hits and cache writes
- Failure causes

Logging Goals
- Debuggable cache behavior (was the network consulted or not)
- Failure diagnostics, in particular degraded cache writes

Structured logging is preferred.

Allowed:
- Primitive values
- Timestamps
- URLs (as values, not objects with behavior)
- Cache identifiers
- Status codes
- Durations

Never allowed:
- The session cookie, in any form

Metadata is write-only.
No component may read metadata to influence the hit/miss decision.
*/

type MetadataSink interface {
	RecordFetch(
		fetchUrl string,
		httpStatus int,
		duration time.Duration,
	)
	RecordCacheHit(
		fetchUrl string,
		entryID string,
	)
	RecordCacheWrite(
		fetchUrl string,
		entryID string,
		sizeByte uint64,
	)
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		errorString string,
		attrs []Attribute,
	)
}

// LogRecorder implements MetadataSink on a logrus logger, emitting
// one structured entry per event.
type LogRecorder struct {
	logger *logrus.Logger
}

func NewLogRecorder(logger *logrus.Logger) LogRecorder {
	return LogRecorder{
		logger: logger,
	}
}

func (r *LogRecorder) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
) {
	r.logger.WithFields(logrus.Fields{
		"url":         fetchUrl,
		"http_status": httpStatus,
		"duration_ms": duration.Milliseconds(),
	}).Info("fetched from web")
}

func (r *LogRecorder) RecordCacheHit(
	fetchUrl string,
	entryID string,
) {
	r.logger.WithFields(logrus.Fields{
		"url":      fetchUrl,
		"entry_id": entryID,
	}).Debug("served from cache")
}

func (r *LogRecorder) RecordCacheWrite(
	fetchUrl string,
	entryID string,
	sizeByte uint64,
) {
	r.logger.WithFields(logrus.Fields{
		"url":       fetchUrl,
		"entry_id":  entryID,
		"size_byte": sizeByte,
	}).Debug("wrote cache entry")
}

func (r *LogRecorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
	fields := logrus.Fields{
		"package":     packageName,
		"action":      action,
		"cause":       cause,
		"observed_at": observedAt.Format(time.RFC3339Nano),
	}
	for _, attr := range attrs {
		fields[string(attr.Key)] = attr.Value
	}
	r.logger.WithFields(fields).Error(errorString)
}

// NopSink discards every event. It serves callers that want silence
// and tests that do not assert on metadata.
type NopSink struct{}

func (NopSink) RecordFetch(fetchUrl string, httpStatus int, duration time.Duration) {}

func (NopSink) RecordCacheHit(fetchUrl string, entryID string) {}

func (NopSink) RecordCacheWrite(fetchUrl string, entryID string, sizeByte uint64) {}

func (NopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
}
