package extractor

import (
	"errors"
	"net/url"
	"time"

	"github.com/rohmanhakim/nps-sites/internal/metadata"
	"github.com/rohmanhakim/nps-sites/pkg/failure"
)

/*
Responsibilities
- Parse nps.gov pages into a DOM tree
- Pull state links, site links and site details out of known anchors
- Report markup drift as StructureError naming the broken selector

Extraction Stages
- Directory: site root → state name → state page URL
- Site list: state page → detail page URLs
- Detail: detail page → SiteRecord

Stages never fetch; they only read the bytes they are handed.
*/

type NPSExtractor struct {
	metadataSink metadata.MetadataSink
	base         url.URL
	policy       MalformedPolicy
}

func NewNPSExtractor(
	metadataSink metadata.MetadataSink,
	base url.URL,
	policy MalformedPolicy,
) NPSExtractor {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	if policy == "" {
		policy = SkipMalformed
	}
	return NPSExtractor{
		metadataSink: metadataSink,
		base:         base,
		policy:       policy,
	}
}

func (n *NPSExtractor) StateDirectory(sourceURL string, htmlByte []byte) (StateDirectory, failure.ClassifiedError) {
	directory, err := ExtractStateDirectory(n.base, htmlByte)
	if err != nil {
		n.recordError("NPSExtractor.StateDirectory", sourceURL, err)
		return nil, err
	}
	return directory, nil
}

func (n *NPSExtractor) SiteLinks(sourceURL string, htmlByte []byte) (SiteLinks, failure.ClassifiedError) {
	links, err := ExtractSiteLinks(n.base, htmlByte, n.policy)
	if err != nil {
		n.recordError("NPSExtractor.SiteLinks", sourceURL, err)
		return SiteLinks{}, err
	}
	for _, skipped := range links.Skipped {
		n.metadataSink.RecordError(
			time.Now(),
			"extractor",
			"NPSExtractor.SiteLinks",
			metadata.CauseContentInvalid,
			"skipped malformed site list entry",
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, sourceURL),
				metadata.NewAttr(metadata.AttrMessage, skipped.Reason),
			},
		)
	}
	return links, nil
}

// Site extracts the record and stamps it with the page it came from.
func (n *NPSExtractor) Site(sourceURL string, htmlByte []byte) (SiteRecord, failure.ClassifiedError) {
	site, err := ExtractSite(htmlByte)
	if err != nil {
		n.recordError("NPSExtractor.Site", sourceURL, err)
		return SiteRecord{}, err
	}
	site.URL = sourceURL
	return site, nil
}

func (n *NPSExtractor) Policy() MalformedPolicy {
	return n.policy
}

func (n *NPSExtractor) recordError(action string, sourceURL string, err failure.ClassifiedError) {
	attrs := []metadata.Attribute{
		metadata.NewAttr(metadata.AttrURL, sourceURL),
	}
	cause := metadata.CauseUnknown
	var structureErr *StructureError
	if errors.As(err, &structureErr) {
		cause = mapStructureErrorToMetadataCause(structureErr)
		if structureErr.Field != "" {
			attrs = append(attrs, metadata.NewAttr(metadata.AttrField, structureErr.Field))
		}
		if structureErr.Selector != "" {
			attrs = append(attrs, metadata.NewAttr(metadata.AttrSelector, structureErr.Selector))
		}
	}
	n.metadataSink.RecordError(
		time.Now(),
		"extractor",
		action,
		cause,
		err.Error(),
		attrs,
	)
}
