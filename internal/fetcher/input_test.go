package fetcher_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rohmanhakim/aoc-cache/internal/fetcher"
	"github.com/rohmanhakim/aoc-cache/internal/metadata"
)

// recordingSink captures fetch events for assertions.
type recordingSink struct {
	metadata.NopSink

	fetchCount int
	lastStatus int
	errorCount int
}

func (r *recordingSink) RecordFetch(fetchUrl string, httpStatus int, duration time.Duration) {
	r.fetchCount++
	r.lastStatus = httpStatus
}

func (r *recordingSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	errorString string,
	attrs []metadata.Attribute,
) {
	r.errorCount++
}

func TestInputFetcher_Fetch_Success(t *testing.T) {
	const body = "1\n2\n3\n"
	var gotCookie, gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		gotUserAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}))
	defer server.Close()

	sink := &recordingSink{}
	f := fetcher.NewInputFetcher(sink, 5*time.Second)

	result, err := f.Fetch(context.Background(), fetcher.NewFetchParam(server.URL, "session=abc", "aoc-cache/test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(result.Body()) != body {
		t.Errorf("expected body %q, got %q", body, string(result.Body()))
	}
	if result.Code() != http.StatusOK {
		t.Errorf("expected status 200, got %d", result.Code())
	}
	if result.SizeByte() != uint64(len(body)) {
		t.Errorf("expected size %d, got %d", len(body), result.SizeByte())
	}
	if gotCookie != "session=abc" {
		t.Errorf("expected cookie header %q, got %q", "session=abc", gotCookie)
	}
	if gotUserAgent != "aoc-cache/test" {
		t.Errorf("expected user agent %q, got %q", "aoc-cache/test", gotUserAgent)
	}
	if sink.fetchCount != 1 {
		t.Errorf("expected 1 recorded fetch, got %d", sink.fetchCount)
	}
	if sink.lastStatus != http.StatusOK {
		t.Errorf("expected recorded status 200, got %d", sink.lastStatus)
	}
}

func TestInputFetcher_Fetch_StatusClassification(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		expectedCause fetcher.FetchErrorCause
	}{
		{
			name:          "unauthorized",
			status:        http.StatusUnauthorized,
			expectedCause: fetcher.ErrCauseUnauthorized,
		},
		{
			name:          "forbidden counts as unauthorized",
			status:        http.StatusForbidden,
			expectedCause: fetcher.ErrCauseUnauthorized,
		},
		{
			name:          "not found",
			status:        http.StatusNotFound,
			expectedCause: fetcher.ErrCauseNotFound,
		},
		{
			name:          "other client error",
			status:        http.StatusBadRequest,
			expectedCause: fetcher.ErrCauseRequestInvalid,
		},
		{
			name:          "server error",
			status:        http.StatusInternalServerError,
			expectedCause: fetcher.ErrCauseRequest5xx,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte("this is not the puzzle input"))
			}))
			defer server.Close()

			sink := &recordingSink{}
			f := fetcher.NewInputFetcher(sink, 5*time.Second)

			_, err := f.Fetch(context.Background(), fetcher.NewFetchParam(server.URL, "session=abc", "aoc-cache/test"))
			if err == nil {
				t.Fatalf("expected error for status %d, got nil", tt.status)
			}

			var fetchError *fetcher.FetchError
			if !errors.As(err, &fetchError) {
				t.Fatalf("expected *fetcher.FetchError, got %T", err)
			}
			if fetchError.Cause != tt.expectedCause {
				t.Errorf("expected cause %q, got %q", tt.expectedCause, fetchError.Cause)
			}
			if fetchError.StatusCode != tt.status {
				t.Errorf("expected status code %d on the error, got %d", tt.status, fetchError.StatusCode)
			}
			if sink.errorCount != 1 {
				t.Errorf("expected 1 recorded error, got %d", sink.errorCount)
			}
		})
	}
}

func TestInputFetcher_Fetch_RedirectIsLoginBounce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/auth/login", http.StatusFound)
	}))
	defer server.Close()

	sink := &recordingSink{}
	f := fetcher.NewInputFetcher(sink, 5*time.Second)

	_, err := f.Fetch(context.Background(), fetcher.NewFetchParam(server.URL, "", "aoc-cache/test"))
	if err == nil {
		t.Fatal("expected error for a redirect response, got nil")
	}

	var fetchError *fetcher.FetchError
	if !errors.As(err, &fetchError) {
		t.Fatalf("expected *fetcher.FetchError, got %T", err)
	}
	if fetchError.Cause != fetcher.ErrCauseUnauthorized {
		t.Errorf("expected cause %q, got %q", fetcher.ErrCauseUnauthorized, fetchError.Cause)
	}
}

func TestInputFetcher_Fetch_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close() // nothing is listening anymore

	sink := &recordingSink{}
	f := fetcher.NewInputFetcher(sink, 2*time.Second)

	_, err := f.Fetch(context.Background(), fetcher.NewFetchParam(serverURL, "session=abc", "aoc-cache/test"))
	if err == nil {
		t.Fatal("expected error for a dead server, got nil")
	}

	var fetchError *fetcher.FetchError
	if !errors.As(err, &fetchError) {
		t.Fatalf("expected *fetcher.FetchError, got %T", err)
	}
	if fetchError.Cause != fetcher.ErrCauseNetworkFailure {
		t.Errorf("expected cause %q, got %q", fetcher.ErrCauseNetworkFailure, fetchError.Cause)
	}
}

func TestInputFetcher_Fetch_MalformedURL(t *testing.T) {
	sink := &recordingSink{}
	f := fetcher.NewInputFetcher(sink, 2*time.Second)

	_, err := f.Fetch(context.Background(), fetcher.NewFetchParam("://not-a-url", "session=abc", "aoc-cache/test"))
	if err == nil {
		t.Fatal("expected error for a malformed URL, got nil")
	}
}
