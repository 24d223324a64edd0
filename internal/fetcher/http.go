package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rohmanhakim/nps-sites/internal/cache"
	"github.com/rohmanhakim/nps-sites/internal/metadata"
	"github.com/rohmanhakim/nps-sites/pkg/failure"
	"github.com/rohmanhakim/nps-sites/pkg/hashutil"
)

/*
Responsibilities

- Answer from the response cache when the key is present
- Otherwise perform one HTTP GET, store the body, persist the cache
- Classify failures into transport and decode errors

Fetch Semantics

- A cached key is always fresh; a hit never touches the network
- A hit of the wrong kind (text where JSON was asked, or the reverse)
  is treated as a miss and overwritten
- Failed requests are never cached and never retried
- Cache persist failures are logged and do not fail the fetch

The fetcher never parses HTML; it only returns bodies.
*/

const digestLength = 12

type HTTPFetcher struct {
	metadataSink metadata.MetadataSink
	store        *cache.Store
	param        FetchParam
}

func NewHTTPFetcher(
	metadataSink metadata.MetadataSink,
	store *cache.Store,
	param FetchParam,
) *HTTPFetcher {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	if param.httpClient == nil {
		param.httpClient = http.DefaultClient
	}
	return &HTTPFetcher{
		metadataSink: metadataSink,
		store:        store,
		param:        param,
	}
}

func (h *HTTPFetcher) FetchText(ctx context.Context, key string) (string, failure.ClassifiedError) {
	if value, ok := h.lookup(key, cache.KindText); ok {
		return value.Text(), nil
	}

	resp, err := h.performFetch(ctx, "HTTPFetcher.FetchText", key, "text/html,application/xhtml+xml,*/*;q=0.8")
	if err != nil {
		return "", err
	}

	text := string(resp.body)
	h.persist(key, cache.TextValue(text))
	return text, nil
}

func (h *HTTPFetcher) FetchJSON(ctx context.Context, key string) (json.RawMessage, failure.ClassifiedError) {
	if value, ok := h.lookup(key, cache.KindJSON); ok {
		return value.JSON(), nil
	}

	resp, err := h.performFetch(ctx, "HTTPFetcher.FetchJSON", key, "application/json")
	if err != nil {
		return nil, err
	}

	var compacted bytes.Buffer
	if compactErr := json.Compact(&compacted, resp.body); compactErr != nil {
		decodeErr := &DecodeError{
			Message:   compactErr.Error(),
			Retryable: false,
			Cause:     ErrCauseInvalidJSON,
			URL:       key,
		}
		h.recordError("HTTPFetcher.FetchJSON", key, decodeErr)
		return nil, decodeErr
	}

	payload := json.RawMessage(compacted.Bytes())
	h.persist(key, cache.JSONValue(payload))
	return payload, nil
}

// lookup reports a usable cache hit for the wanted kind and records what
// the cache did.
func (h *HTTPFetcher) lookup(key string, want cache.Kind) (cache.Value, bool) {
	value, ok := h.store.Get(key)
	if ok && value.Kind() == want {
		h.metadataSink.RecordCache(metadata.CacheHit, key, nil)
		return value, true
	}
	if ok {
		h.metadataSink.RecordCache(metadata.CacheIgnored, key, []metadata.Attribute{
			metadata.NewAttr(metadata.AttrKind, string(value.Kind())),
		})
	}
	h.metadataSink.RecordCache(metadata.CacheMiss, key, nil)
	return cache.Value{}, false
}

// persist stores a fresh value. The store records its own failures and the
// value is still returned to the caller, so the error is dropped here.
func (h *HTTPFetcher) persist(key string, value cache.Value) {
	_ = h.store.Put(key, value)
}

func (h *HTTPFetcher) performFetch(
	ctx context.Context,
	callerMethod string,
	rawURL string,
	accept string,
) (response, failure.ClassifiedError) {
	fetchURL, parseErr := url.Parse(rawURL)
	if parseErr != nil || fetchURL.Host == "" {
		msg := fmt.Sprintf("%q is not an absolute URL", rawURL)
		if parseErr != nil {
			msg = parseErr.Error()
		}
		err := &TransportError{
			Message:   msg,
			Retryable: false,
			Cause:     ErrCauseInvalidRequest,
			URL:       rawURL,
		}
		h.recordError(callerMethod, rawURL, err)
		return response{}, err
	}

	if h.param.rateLimiter != nil {
		if waitErr := h.param.rateLimiter.Wait(ctx, fetchURL.Host); waitErr != nil {
			err := &TransportError{
				Message:   waitErr.Error(),
				Retryable: false,
				Cause:     ErrCauseCanceled,
				URL:       rawURL,
			}
			h.recordError(callerMethod, rawURL, err)
			return response{}, err
		}
		defer h.param.rateLimiter.MarkLastFetchAsNow(fetchURL.Host)
	}

	startTime := time.Now()
	resp, err := h.roundTrip(ctx, rawURL, accept)
	duration := time.Since(startTime)

	event := metadata.FetchEvent{
		FetchURL: rawURL,
		Duration: duration,
	}
	var transportErr *TransportError
	if err != nil && errors.As(err, &transportErr) {
		event.HTTPStatus = transportErr.StatusCode
	}
	if err == nil {
		event.HTTPStatus = resp.statusCode
		event.ContentType = resp.contentType
		event.SizeBytes = len(resp.body)
		event.Digest = h.digest(resp.body)
	}
	h.metadataSink.RecordFetch(event)

	if err != nil {
		h.recordError(callerMethod, rawURL, err)
		return response{}, err
	}
	return resp, nil
}

func (h *HTTPFetcher) roundTrip(ctx context.Context, rawURL string, accept string) (response, failure.ClassifiedError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return response{}, &TransportError{
			Message:   fmt.Sprintf("failed to create request: %v", err),
			Retryable: false,
			Cause:     ErrCauseInvalidRequest,
			URL:       rawURL,
		}
	}
	for key, value := range requestHeaders(h.param.userAgent, accept) {
		req.Header.Set(key, value)
	}

	resp, err := h.param.httpClient.Do(req)
	if err != nil {
		cause := ErrCauseNetworkFailure
		if ctx.Err() != nil {
			cause = ErrCauseCanceled
		}
		return response{}, &TransportError{
			Message:   fmt.Sprintf("request failed: %v", err),
			Retryable: false,
			Cause:     cause,
			URL:       rawURL,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return response{}, &TransportError{
			Message:    fmt.Sprintf("unexpected status %d", resp.StatusCode),
			Retryable:  false,
			Cause:      ErrCauseNonSuccessStatus,
			URL:        rawURL,
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, &TransportError{
			Message:    fmt.Sprintf("failed to read response body: %v", err),
			Retryable:  false,
			Cause:      ErrCauseReadResponseBodyError,
			URL:        rawURL,
			StatusCode: resp.StatusCode,
		}
	}

	return response{
		body:        body,
		statusCode:  resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
	}, nil
}

func (h *HTTPFetcher) digest(body []byte) string {
	if h.param.hashAlgo == "" {
		return ""
	}
	digest, err := hashutil.ShortDigest(body, h.param.hashAlgo, digestLength)
	if err != nil {
		return ""
	}
	return digest
}

func (h *HTTPFetcher) recordError(callerMethod string, rawURL string, err failure.ClassifiedError) {
	attrs := []metadata.Attribute{
		metadata.NewAttr(metadata.AttrURL, rawURL),
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) && transportErr.StatusCode != 0 {
		attrs = append(attrs, metadata.NewAttr(metadata.AttrHTTPStatus, strconv.Itoa(transportErr.StatusCode)))
	}
	h.metadataSink.RecordError(
		time.Now(),
		"fetcher",
		callerMethod,
		mapFetchErrorToMetadataCause(err),
		err.Error(),
		attrs,
	)
}

func requestHeaders(userAgent string, accept string) map[string]string {
	headers := map[string]string{
		"Accept":          accept,
		"Accept-Language": "en-US,en;q=0.5",
	}
	if userAgent != "" {
		headers["User-Agent"] = userAgent
	}
	return headers
}
