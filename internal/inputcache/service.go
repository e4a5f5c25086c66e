package inputcache

import (
	"context"
	"errors"
	"time"

	"github.com/rohmanhakim/aoc-cache/internal/cachekey"
	"github.com/rohmanhakim/aoc-cache/internal/fetcher"
	"github.com/rohmanhakim/aoc-cache/internal/metadata"
	"github.com/rohmanhakim/aoc-cache/internal/store"
	"github.com/rohmanhakim/aoc-cache/pkg/failure"
)

/*
Responsibilities
- Decide between serving from the cache store and fetching from the web
- Populate the store after a successful fetch

Decision Semantics
- A cache hit returns immediately; neither the network nor the
  credential is consulted
- A storage failure on read propagates; it is not demoted to a miss,
  because a silently unreadable cache would turn every call into a
  request against the remote service
- Only successful bodies are written; error pages are never cached
- A write failure after a successful fetch is recorded and the body
  is still returned (best-effort caching)
- One fetch attempt per call; no retries, no backoff
*/

type Service struct {
	fetcher      fetcher.Fetcher
	store        store.Store
	metadataSink metadata.MetadataSink
	userAgent    string
}

func NewService(
	f fetcher.Fetcher,
	s store.Store,
	metadataSink metadata.MetadataSink,
	userAgent string,
) Service {
	return Service{
		fetcher:      f,
		store:        s,
		metadataSink: metadataSink,
		userAgent:    userAgent,
	}
}

// Get returns the content of url, from the cache store when an entry
// exists and from the web otherwise, with cookie attached as the
// session credential on the outbound request. A fetched body is
// persisted before returning so the next call for the same url stays
// off the network.
func (s *Service) Get(ctx context.Context, url string, cookie string) (string, failure.ClassifiedError) {
	callerMethod := "Service.Get"

	id := cachekey.DeriveKey(url)

	content, found, err := s.store.Read(id)
	if err != nil {
		s.recordStorageError(callerMethod, url, id, err)
		return "", err
	}
	if found {
		s.metadataSink.RecordCacheHit(url, id)
		return content, nil
	}

	result, fetchErr := s.fetcher.Fetch(ctx, fetcher.NewFetchParam(url, cookie, s.userAgent))
	if fetchErr != nil {
		return "", fetchErr
	}

	body := string(result.Body())

	if writeErr := s.store.Write(id, body); writeErr != nil {
		// A failed cache write must not turn a successful fetch into
		// a reported error; the next call simply fetches again.
		s.recordStorageError(callerMethod, url, id, writeErr)
		return body, nil
	}

	s.metadataSink.RecordCacheWrite(url, id, result.SizeByte())
	return body, nil
}

func (s *Service) recordStorageError(callerMethod string, url string, id string, err failure.ClassifiedError) {
	attrs := []metadata.Attribute{
		metadata.NewAttr(metadata.AttrURL, url),
		metadata.NewAttr(metadata.AttrEntryID, id),
	}
	cause := metadata.ErrorCause(metadata.CauseUnknown)
	var storageError *store.StorageError
	if errors.As(err, &storageError) {
		cause = store.MapStorageErrorToMetadataCause(storageError)
		if storageError.Path != "" {
			attrs = append(attrs, metadata.NewAttr(metadata.AttrWritePath, storageError.Path))
		}
	}
	s.metadataSink.RecordError(
		time.Now(),
		"inputcache",
		callerMethod,
		cause,
		err.Error(),
		attrs,
	)
}
