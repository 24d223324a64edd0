package extractor

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/nps-sites/pkg/failure"
	"github.com/rohmanhakim/nps-sites/pkg/urlutil"
)

// ExtractStateDirectory reads the state search block of the site root page.
// Each anchor becomes name → absolute URL, with the name trimmed and
// lowercased and the href resolved against base.
//
// The directory is all or nothing: a missing block, a block without
// anchors, or any anchor lacking an href or text fails the whole page.
func ExtractStateDirectory(base url.URL, htmlByte []byte) (StateDirectory, failure.ClassifiedError) {
	doc, err := parseDocument(htmlByte)
	if err != nil {
		return nil, err
	}

	block, err := firstMatch(doc.Selection, "state directory", SelectorStateSearch)
	if err != nil {
		return nil, err
	}

	anchors := block.Find(SelectorStateAnchor)
	if anchors.Length() == 0 {
		return nil, missingElement("state link", SelectorStateSearch+" "+SelectorStateAnchor)
	}

	directory := make(StateDirectory, anchors.Length())
	var failed *StructureError
	anchors.EachWithBreak(func(i int, anchor *goquery.Selection) bool {
		name := NormalizeStateName(anchor.Text())
		if name == "" {
			failed = &StructureError{
				Message:   fmt.Sprintf("state link %d has no text", i),
				Retryable: false,
				Cause:     ErrCauseEmptyText,
				Field:     "state name",
				Selector:  SelectorStateSearch + " " + SelectorStateAnchor,
			}
			return false
		}

		href, ok := anchor.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			failed = &StructureError{
				Message:   fmt.Sprintf("state link %q has no href", name),
				Retryable: false,
				Cause:     ErrCauseMissingAttribute,
				Field:     "state url",
				Selector:  SelectorStateSearch + " " + SelectorStateAnchor + "[href]",
			}
			return false
		}

		resolved, resolveErr := urlutil.Resolve(base, href)
		if resolveErr != nil {
			failed = &StructureError{
				Message:   fmt.Sprintf("state link %q: %v", name, resolveErr),
				Retryable: false,
				Cause:     ErrCauseUnresolvableLink,
				Field:     "state url",
			}
			return false
		}

		directory[name] = resolved.String()
		return true
	})
	if failed != nil {
		return nil, failed
	}
	return directory, nil
}
