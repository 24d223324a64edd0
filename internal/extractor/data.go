package extractor

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// StateDirectory maps a normalized state name (trimmed, lowercased) to the
// absolute URL of that state's site list.
type StateDirectory map[string]string

// Names returns the state names in ascending order.
func (d StateDirectory) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup normalizes name the same way keys were normalized.
func (d StateDirectory) Lookup(name string) (string, bool) {
	stateURL, ok := d[NormalizeStateName(name)]
	return stateURL, ok
}

func NormalizeStateName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MalformedPolicy decides what a malformed site-list entry does.
type MalformedPolicy string

const (
	// SkipMalformed drops the entry and reports it in SiteLinks.Skipped.
	SkipMalformed MalformedPolicy = "skip"
	// AbortOnMalformed fails the whole list with a StructureError.
	AbortOnMalformed MalformedPolicy = "abort"
)

func ParseMalformedPolicy(s string) (MalformedPolicy, error) {
	switch p := MalformedPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case SkipMalformed, AbortOnMalformed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown site list policy %q (want skip or abort)", s)
	}
}

// SkippedEntry records a site-list item dropped under SkipMalformed.
// Index is the zero-based position among the list entries.
type SkippedEntry struct {
	Index  int
	Reason string
}

// SiteLinks is the outcome of site-list extraction: detail-page URLs in
// page order, plus whatever was skipped.
type SiteLinks struct {
	Links   []url.URL
	Skipped []SkippedEntry
}

// SiteRecord is one national site as shown on its detail page.
// Category may be empty; every other field comes from an element that
// must exist.
type SiteRecord struct {
	Category string
	Name     string
	Address  string
	Zipcode  string
	Phone    string
	URL      string
}

// String renders the one-line listing form, e.g.
// "Isle Royale (National Park): Houghton, MI 49931".
func (s SiteRecord) String() string {
	return s.Name + " (" + s.Category + "): " + s.Address + " " + s.Zipcode
}

// JoinAddress composes the display address from locality and region.
func JoinAddress(locality, region string) string {
	return locality + ", " + region
}
