package metadata_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rohmanhakim/aoc-cache/internal/metadata"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCapturedRecorder() (metadata.LogRecorder, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})
	return metadata.NewLogRecorder(logger), buf
}

func decodeSingleEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err, "expected exactly one JSON log entry, got: %s", buf.String())
	return entry
}

func TestLogRecorder_RecordFetch(t *testing.T) {
	recorder, buf := newCapturedRecorder()

	recorder.RecordFetch("https://adventofcode.com/2022/day/1/input", 200, 1500*time.Millisecond)

	entry := decodeSingleEntry(t, buf)
	assert.Equal(t, "fetched from web", entry["msg"])
	assert.Equal(t, "https://adventofcode.com/2022/day/1/input", entry["url"])
	assert.Equal(t, float64(200), entry["http_status"])
	assert.Equal(t, float64(1500), entry["duration_ms"])
}

func TestLogRecorder_RecordCacheHit(t *testing.T) {
	recorder, buf := newCapturedRecorder()

	recorder.RecordCacheHit("https://adventofcode.com/2022/day/1/input", "deadbeef")

	entry := decodeSingleEntry(t, buf)
	assert.Equal(t, "served from cache", entry["msg"])
	assert.Equal(t, "deadbeef", entry["entry_id"])
}

func TestLogRecorder_RecordError_IncludesAttributes(t *testing.T) {
	recorder, buf := newCapturedRecorder()

	recorder.RecordError(
		time.Now(),
		"inputcache",
		"Service.Get",
		metadata.CauseStorageFailure,
		"storage error: write failed",
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, "https://adventofcode.com/2022/day/1/input"),
			metadata.NewAttr(metadata.AttrEntryID, "deadbeef"),
		},
	)

	entry := decodeSingleEntry(t, buf)
	assert.Equal(t, "storage error: write failed", entry["msg"])
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "inputcache", entry["package"])
	assert.Equal(t, "Service.Get", entry["action"])
	assert.Equal(t, "https://adventofcode.com/2022/day/1/input", entry["url"])
	assert.Equal(t, "deadbeef", entry["entry_id"])
}

func TestNewLogger_RejectsUnknownLevel(t *testing.T) {
	_, err := metadata.NewLogger("chatty")
	assert.Error(t, err)

	logger, err := metadata.NewLogger("debug")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}
