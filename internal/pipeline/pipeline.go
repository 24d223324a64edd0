package pipeline

import (
	"context"
	"strconv"
	"time"

	"github.com/rohmanhakim/nps-sites/internal/extractor"
	"github.com/rohmanhakim/nps-sites/internal/fetcher"
	"github.com/rohmanhakim/nps-sites/internal/metadata"
	"github.com/rohmanhakim/nps-sites/pkg/failure"
)

/*
 Pipeline chains fetching and extraction for the three nps.gov stages:

	site root ──► StateDirectory
	state page ──► detail URLs ──► SiteRecord (one per URL)

 Ordering guarantees:
 - The directory fetch precedes any state-page fetch.
 - A state page is fetched before any of its detail pages.
 - Detail pages are fetched one at a time, in list order.

 Every fetch goes through the injected Fetcher, so cached pages never
 touch the network. Failures propagate to the caller once; nothing here
 retries, substitutes defaults or returns partial site lists.
*/

type Pipeline struct {
	metadataSink metadata.MetadataSink
	fetcher      fetcher.Fetcher
	extractor    extractor.NPSExtractor
	rootURL      string
}

func NewPipeline(
	metadataSink metadata.MetadataSink,
	f fetcher.Fetcher,
	ext extractor.NPSExtractor,
	rootURL string,
) Pipeline {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	return Pipeline{
		metadataSink: metadataSink,
		fetcher:      f,
		extractor:    ext,
		rootURL:      rootURL,
	}
}

// StateDirectory fetches the site root and extracts the state links.
func (p *Pipeline) StateDirectory(ctx context.Context) (extractor.StateDirectory, failure.ClassifiedError) {
	body, err := p.fetcher.FetchText(ctx, p.rootURL)
	if err != nil {
		return nil, err
	}
	return p.extractor.StateDirectory(p.rootURL, []byte(body))
}

// SitesForState fetches a state page and then every listed detail page.
// Any detail failure fails the whole call.
func (p *Pipeline) SitesForState(ctx context.Context, stateURL string) ([]extractor.SiteRecord, failure.ClassifiedError) {
	body, err := p.fetcher.FetchText(ctx, stateURL)
	if err != nil {
		return nil, err
	}

	links, err := p.extractor.SiteLinks(stateURL, []byte(body))
	if err != nil {
		return nil, err
	}

	sites := make([]extractor.SiteRecord, 0, len(links.Links))
	for _, link := range links.Links {
		site, err := p.Site(ctx, link.String())
		if err != nil {
			p.metadataSink.RecordError(
				time.Now(),
				"pipeline",
				"Pipeline.SitesForState",
				metadata.CauseUnknown,
				"state listing abandoned after detail failure",
				[]metadata.Attribute{
					metadata.NewAttr(metadata.AttrURL, stateURL),
					metadata.NewAttr(metadata.AttrCount, strconv.Itoa(len(sites))),
				},
			)
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, nil
}

// Site fetches one detail page and extracts its record.
func (p *Pipeline) Site(ctx context.Context, siteURL string) (extractor.SiteRecord, failure.ClassifiedError) {
	body, err := p.fetcher.FetchText(ctx, siteURL)
	if err != nil {
		return extractor.SiteRecord{}, err
	}
	return p.extractor.Site(siteURL, []byte(body))
}

func (p *Pipeline) RootURL() string {
	return p.rootURL
}
