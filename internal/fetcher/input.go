package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rohmanhakim/aoc-cache/internal/metadata"
	"github.com/rohmanhakim/aoc-cache/pkg/failure"
)

/*
Responsibilities

- Perform the authenticated GET for a puzzle input
- Attach the session cookie and user agent
- Classify responses

Fetch Semantics

- Exactly one attempt per call; no retries, no backoff
- Redirects are not followed: an input URL answered with a redirect is
  the login bounce for a missing or expired session
- Only 2xx bodies are returned; error pages are never surfaced as
  puzzle input
- The cookie is used for the outbound request and then discarded

The fetcher never inspects content; it only returns bytes and metadata.
*/

type InputFetcher struct {
	metadataSink metadata.MetadataSink
	httpClient   *http.Client
}

func NewInputFetcher(
	metadataSink metadata.MetadataSink,
	timeout time.Duration,
) InputFetcher {
	return InputFetcher{
		metadataSink: metadataSink,
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (f *InputFetcher) Fetch(
	ctx context.Context,
	fetchParam FetchParam,
) (FetchResult, failure.ClassifiedError) {
	callerMethod := "InputFetcher.Fetch"
	startTime := time.Now()

	result, err := f.performFetch(ctx, fetchParam)

	duration := time.Since(startTime)

	var statusCode int
	if err != nil {
		var fetchError *FetchError
		if errors.As(err, &fetchError) {
			statusCode = fetchError.StatusCode
		}
	} else {
		statusCode = result.Code()
	}

	f.metadataSink.RecordFetch(
		fetchParam.fetchUrl,
		statusCode,
		duration,
	)

	if err != nil {
		f.recordFetchError(callerMethod, fetchParam.fetchUrl, err)
		return FetchResult{}, err
	}

	return result, nil
}

func (f *InputFetcher) recordFetchError(callerMethod string, fetchUrl string, err failure.ClassifiedError) {
	var fetchError *FetchError
	if errors.As(err, &fetchError) {
		f.metadataSink.RecordError(
			time.Now(),
			"fetcher",
			callerMethod,
			mapFetchErrorToMetadataCause(fetchError),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, fetchUrl),
			},
		)
	}
}

func (f *InputFetcher) performFetch(ctx context.Context, fetchParam FetchParam) (FetchResult, failure.ClassifiedError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchParam.fetchUrl, nil)
	if err != nil {
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("failed to create request: %v", err),
			Retryable: false,
			Cause:     ErrCauseNetworkFailure,
		}
	}

	req.Header.Set("Cookie", fetchParam.cookie)
	req.Header.Set("User-Agent", fetchParam.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("request failed: %v", err),
			Retryable: true,
			Cause:     ErrCauseNetworkFailure,
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return FetchResult{}, &FetchError{
			Message:    fmt.Sprintf("server error: %d", resp.StatusCode),
			Retryable:  true,
			Cause:      ErrCauseRequest5xx,
			StatusCode: resp.StatusCode,
		}

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return FetchResult{}, &FetchError{
			Message:    fmt.Sprintf("session cookie rejected: %d", resp.StatusCode),
			Retryable:  false,
			Cause:      ErrCauseUnauthorized,
			StatusCode: resp.StatusCode,
		}

	case resp.StatusCode == http.StatusNotFound:
		return FetchResult{}, &FetchError{
			Message:    "input not found (404); is the day unlocked?",
			Retryable:  false,
			Cause:      ErrCauseNotFound,
			StatusCode: resp.StatusCode,
		}

	case resp.StatusCode >= 400:
		return FetchResult{}, &FetchError{
			Message:    fmt.Sprintf("client error: %d", resp.StatusCode),
			Retryable:  false,
			Cause:      ErrCauseRequestInvalid,
			StatusCode: resp.StatusCode,
		}

	case resp.StatusCode >= 300:
		// The input endpoint answers an unauthenticated request with a
		// redirect to the login page.
		return FetchResult{}, &FetchError{
			Message:    fmt.Sprintf("redirected (%d); session cookie missing or expired", resp.StatusCode),
			Retryable:  false,
			Cause:      ErrCauseUnauthorized,
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FetchResult{}, &FetchError{
			Message:    fmt.Sprintf("failed to read response body: %v", err),
			Retryable:  true,
			Cause:      ErrCauseReadResponseBodyError,
			StatusCode: resp.StatusCode,
		}
	}

	result := FetchResult{
		url:  fetchParam.fetchUrl,
		body: body,
		meta: ResponseMeta{
			statusCode:          resp.StatusCode,
			transferredSizeByte: uint64(len(body)),
		},
	}

	return result, nil
}
