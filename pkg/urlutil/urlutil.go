package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// Resolve turns an href found in a page into an absolute URL against base.
// Absolute hrefs are returned unchanged; fragments are dropped since they
// never change what the server returns.
//
// Properties:
//   - Pure: no state, no memory
//   - Deterministic: same input always produces same output
func Resolve(base url.URL, href string) (url.URL, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return url.URL{}, fmt.Errorf("empty href")
	}

	ref, err := url.Parse(href)
	if err != nil {
		return url.URL{}, fmt.Errorf("parse href %q: %w", href, err)
	}

	resolved := *base.ResolveReference(ref)
	resolved.Fragment = ""
	resolved.RawFragment = ""
	return resolved, nil
}

// ParseAbsolute parses raw and rejects anything without a scheme and host.
func ParseAbsolute(raw string) (url.URL, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return url.URL{}, err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return url.URL{}, fmt.Errorf("%q is not an absolute URL", raw)
	}
	return *parsed, nil
}
