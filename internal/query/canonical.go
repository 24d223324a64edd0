package query

import (
	"fmt"
	"sort"
	"strings"
)

// Params are request parameters. Values are rendered with fmt.Sprint, so
// strings, integers, floats and booleans all work.
type Params map[string]any

// Canonical returns the cache identity of a parameterized request:
// the endpoint, "?", then every name=value pair sorted by byte order and
// joined with "&". Two calls with the same endpoint and the same pairs
// return the same key no matter how the map was built.
//
// Names and values are used as given; nothing is URL-escaped. The result
// doubles as the request URL, so callers pass values that are already safe
// in a query string.
func Canonical(endpoint string, params Params) string {
	pairs := make([]string, 0, len(params))
	for name, value := range params {
		pairs = append(pairs, name+"="+fmt.Sprint(value))
	}
	sort.Strings(pairs)
	return endpoint + "?" + strings.Join(pairs, "&")
}
