package fetcher

import (
	"context"
	"encoding/json"

	"github.com/rohmanhakim/nps-sites/pkg/failure"
)

// Fetcher resolves a request key to content, through the response cache.
// The key is the request URL itself: a page URL for HTML, or a canonical
// query key for API calls.
type Fetcher interface {
	// FetchText returns the raw response body.
	FetchText(ctx context.Context, key string) (string, failure.ClassifiedError)

	// FetchJSON returns the response body after validating it as JSON.
	FetchJSON(ctx context.Context, key string) (json.RawMessage, failure.ClassifiedError)
}
