package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// parseDocument parses raw HTML and wraps it for selector queries.
func parseDocument(htmlByte []byte) (*goquery.Document, *StructureError) {
	root, err := html.Parse(bytes.NewReader(htmlByte))
	if err != nil {
		return nil, &StructureError{
			Message:   fmt.Sprintf("failed to parse HTML: %v", err),
			Retryable: false,
			Cause:     ErrCauseNotHTML,
		}
	}
	return goquery.NewDocumentFromNode(root), nil
}

// firstMatch returns the first element under scope matching selector, or a
// StructureError naming field when nothing matches.
func firstMatch(scope *goquery.Selection, field, selector string) (*goquery.Selection, *StructureError) {
	match := scope.Find(selector).First()
	if match.Length() == 0 {
		return nil, missingElement(field, selector)
	}
	return match, nil
}

// requiredText is firstMatch followed by the element's trimmed text.
// An element that exists but holds no text yields "".
func requiredText(scope *goquery.Selection, field, selector string) (string, *StructureError) {
	match, err := firstMatch(scope, field, selector)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(match.Text()), nil
}
