package fetcher

import (
	"net/http"

	"github.com/rohmanhakim/nps-sites/pkg/hashutil"
	"github.com/rohmanhakim/nps-sites/pkg/limiter"
)

// FetchParam carries everything an HTTPFetcher needs besides the cache.
type FetchParam struct {
	httpClient  *http.Client
	userAgent   string
	rateLimiter limiter.RateLimiter
	hashAlgo    hashutil.HashAlgo
}

// NewFetchParam builds fetch settings. A nil client means http.DefaultClient;
// a nil rate limiter means no politeness delay; an empty hash algorithm
// disables content digests.
func NewFetchParam(
	httpClient *http.Client,
	userAgent string,
	rateLimiter limiter.RateLimiter,
	hashAlgo hashutil.HashAlgo,
) FetchParam {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return FetchParam{
		httpClient:  httpClient,
		userAgent:   userAgent,
		rateLimiter: rateLimiter,
		hashAlgo:    hashAlgo,
	}
}

func (p FetchParam) UserAgent() string {
	return p.userAgent
}

func (p FetchParam) HashAlgo() hashutil.HashAlgo {
	return p.hashAlgo
}

// response is what a single successful network round trip produced.
type response struct {
	body        []byte
	statusCode  int
	contentType string
}
