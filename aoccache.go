// Package aoccache caches Advent of Code puzzle inputs on disk so
// that repeated runs of a solution never re-request an input the
// server already served once. The point is reducing load on the
// puzzle server, not speed.
//
// The input is fetched with the caller's session cookie on the first
// call for a URL and persisted under a per-package scratch directory,
// keyed by a hash of the URL; every later call for the same URL is
// served from disk and never touches the network or the cookie.
//
//	// my.cookie is a file containing the cookie string, e.g.
//	// "session=abcd...".
//	input, err := aoccache.Get("https://adventofcode.com/2022/day/1/input", myCookie)
//
// Entries are written once and never expire; they are wiped only by
// deleting the cache directory. Puzzle inputs are immutable, so
// nothing ever invalidates them.
package aoccache

import (
	"context"
	"time"

	"github.com/rohmanhakim/aoc-cache/internal/fetcher"
	"github.com/rohmanhakim/aoc-cache/internal/inputcache"
	"github.com/rohmanhakim/aoc-cache/internal/metadata"
	"github.com/rohmanhakim/aoc-cache/internal/scratch"
	"github.com/rohmanhakim/aoc-cache/internal/store"
	"github.com/sirupsen/logrus"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "aoc-cache/1.0"
)

var defaultService = newDefaultService()

func newDefaultService() inputcache.Service {
	// Warn level keeps the library quiet in normal use while still
	// surfacing degraded cache writes.
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	sink := metadata.NewLogRecorder(logger)

	inputFetcher := fetcher.NewInputFetcher(&sink, defaultTimeout)
	localStore := store.NewLocalStore(scratch.NewLocalProvider(""))
	return inputcache.NewService(&inputFetcher, localStore, &sink, defaultUserAgent)
}

// Get returns the puzzle input for url, from the web on the first
// call and from the local cache on every call after that.
//
// The cookie is the session cookie taken from browser traffic on the
// puzzle site, shaped like "session=abcd..." with no trailing
// newline. It is attached to the outbound request and then discarded;
// it is never stored or logged, and it is not consulted at all when
// the cache already holds the input.
func Get(url string, cookie string) (string, error) {
	content, err := defaultService.Get(context.Background(), url, cookie)
	if err != nil {
		return "", err
	}
	return content, nil
}
