package extractor

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/nps-sites/pkg/failure"
	"github.com/rohmanhakim/nps-sites/pkg/urlutil"
)

// ExtractSiteLinks reads a state page and returns the detail-page URL of
// every listed site, in page order, resolved against base.
//
// A missing results container fails the page. A list entry without a
// usable link is handled by policy: SkipMalformed reports it in Skipped
// and moves on, AbortOnMalformed fails the page. A container with no
// entries is an empty result, not an error.
func ExtractSiteLinks(base url.URL, htmlByte []byte, policy MalformedPolicy) (SiteLinks, failure.ClassifiedError) {
	doc, err := parseDocument(htmlByte)
	if err != nil {
		return SiteLinks{}, err
	}

	container, err := firstMatch(doc.Selection, "site list", SelectorResultsArea)
	if err != nil {
		return SiteLinks{}, err
	}

	result := SiteLinks{
		Links: []url.URL{},
	}
	var aborted *StructureError
	container.Find(SelectorResultEntry).EachWithBreak(func(i int, entry *goquery.Selection) bool {
		link, malformed := entryLink(base, i, entry)
		if malformed == nil {
			result.Links = append(result.Links, link)
			return true
		}
		if policy == AbortOnMalformed {
			aborted = malformed
			return false
		}
		result.Skipped = append(result.Skipped, SkippedEntry{
			Index:  i,
			Reason: malformed.Message,
		})
		return true
	})
	if aborted != nil {
		return SiteLinks{}, aborted
	}
	return result, nil
}

func entryLink(base url.URL, index int, entry *goquery.Selection) (url.URL, *StructureError) {
	anchor := entry.Find(SelectorEntryLink).First()
	if anchor.Length() == 0 {
		return url.URL{}, &StructureError{
			Message:   fmt.Sprintf("entry %d has no site link", index),
			Retryable: false,
			Cause:     ErrCauseMissingElement,
			Field:     "site link",
			Selector:  SelectorResultEntry + " " + SelectorEntryLink,
		}
	}

	href, ok := anchor.Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return url.URL{}, &StructureError{
			Message:   fmt.Sprintf("entry %d site link has no href", index),
			Retryable: false,
			Cause:     ErrCauseMissingAttribute,
			Field:     "site link",
			Selector:  SelectorResultEntry + " " + SelectorEntryLink + "[href]",
		}
	}

	resolved, err := urlutil.Resolve(base, href)
	if err != nil {
		return url.URL{}, &StructureError{
			Message:   fmt.Sprintf("entry %d: %v", index, err),
			Retryable: false,
			Cause:     ErrCauseUnresolvableLink,
			Field:     "site link",
		}
	}
	return resolved, nil
}
