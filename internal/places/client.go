package places

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/rohmanhakim/nps-sites/internal/extractor"
	"github.com/rohmanhakim/nps-sites/internal/fetcher"
	"github.com/rohmanhakim/nps-sites/internal/metadata"
	"github.com/rohmanhakim/nps-sites/internal/query"
	"github.com/rohmanhakim/nps-sites/pkg/failure"
)

/*
Responsibilities
- Turn a SiteRecord into a radius search around its postal code
- Key the request canonically so equal searches share one cache entry
- Decode the answer into NearbyPlace values with placeholders applied

The client holds a static API key and sends it as a query parameter.
*/

type Client struct {
	metadataSink metadata.MetadataSink
	fetcher      fetcher.Fetcher
	param        ClientParam
}

func NewClient(
	metadataSink metadata.MetadataSink,
	f fetcher.Fetcher,
	param ClientParam,
) Client {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	return Client{
		metadataSink: metadataSink,
		fetcher:      f,
		param:        param,
	}
}

// RequestKey returns the canonical request for a search around site. It is
// both the URL that gets fetched and the cache key.
func (c *Client) RequestKey(site extractor.SiteRecord) (string, failure.ClassifiedError) {
	if c.param.apiKey == "" {
		return "", &RequestError{
			Message:   "set NPS_PLACES_API_KEY, placesApiKey in the config file, or --api-key",
			Retryable: false,
			Cause:     ErrCauseMissingAPIKey,
		}
	}
	origin := strings.TrimSpace(site.Zipcode)
	if origin == "" {
		return "", &RequestError{
			Message:   "site " + site.Name + " has no postal code",
			Retryable: false,
			Cause:     ErrCauseMissingOrigin,
		}
	}

	params := query.Params{
		"key":         url.QueryEscape(c.param.apiKey),
		"origin":      url.QueryEscape(origin),
		"radius":      c.param.radius,
		"maxMatches":  c.param.maxMatches,
		"ambiguities": c.param.ambiguities,
		"outFormat":   c.param.outFormat,
	}
	return query.Canonical(c.param.endpoint, params), nil
}

// Nearby searches around site's postal code. Results come back in the
// order the API ranked them.
func (c *Client) Nearby(ctx context.Context, site extractor.SiteRecord) ([]NearbyPlace, failure.ClassifiedError) {
	key, err := c.RequestKey(site)
	if err != nil {
		c.recordError("Client.Nearby", site, err)
		return nil, err
	}

	payload, err := c.fetcher.FetchJSON(ctx, key)
	if err != nil {
		return nil, err
	}

	found, err := Decode(payload)
	if err != nil {
		c.recordError("Client.Nearby", site, err)
		return nil, err
	}
	return found, nil
}

func (c *Client) recordError(action string, site extractor.SiteRecord, err failure.ClassifiedError) {
	cause := metadata.CauseContentInvalid
	var requestErr *RequestError
	if errors.As(err, &requestErr) {
		cause = mapRequestErrorToMetadataCause(requestErr)
	}
	c.metadataSink.RecordError(
		time.Now(),
		"places",
		action,
		cause,
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, site.URL),
			metadata.NewAttr(metadata.AttrField, site.Zipcode),
		},
	)
}
