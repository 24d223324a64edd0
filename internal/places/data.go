package places

import "fmt"

const (
	PlaceholderName     = "no name"
	PlaceholderCategory = "no category"
	PlaceholderAddress  = "no address"
	PlaceholderCity     = "no city"
)

// NearbyPlace is one point of interest returned by the radius search.
// Fields are never empty: absent values carry their placeholder.
type NearbyPlace struct {
	Name     string
	Category string
	Address  string
	City     string
}

// String renders "name (category): address, city".
func (p NearbyPlace) String() string {
	return fmt.Sprintf("%s (%s): %s, %s", p.Name, p.Category, p.Address, p.City)
}

// ClientParam holds the fixed part of every radius search request.
type ClientParam struct {
	endpoint    string
	apiKey      string
	radius      int
	maxMatches  int
	ambiguities string
	outFormat   string
}

func NewClientParam(
	endpoint string,
	apiKey string,
	radius int,
	maxMatches int,
	ambiguities string,
	outFormat string,
) ClientParam {
	return ClientParam{
		endpoint:    endpoint,
		apiKey:      apiKey,
		radius:      radius,
		maxMatches:  maxMatches,
		ambiguities: ambiguities,
		outFormat:   outFormat,
	}
}

func (p ClientParam) Endpoint() string {
	return p.endpoint
}

func (p ClientParam) HasAPIKey() bool {
	return p.apiKey != ""
}
