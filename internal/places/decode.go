package places

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rohmanhakim/nps-sites/internal/fetcher"
	"github.com/rohmanhakim/nps-sites/pkg/failure"
)

type radiusResponse struct {
	SearchResults []searchResult `json:"searchResults"`
}

type searchResult struct {
	Name     optionalText    `json:"name"`
	Category optionalText    `json:"category"`
	Fields   json.RawMessage `json:"fields"`
}

type resultFields struct {
	Address optionalText `json:"address"`
	City    optionalText `json:"city"`
}

// fields decodes the nested block. A block that is not an object reads as
// absent so one odd record cannot fail the whole search.
func (r searchResult) fields() resultFields {
	var f resultFields
	trimmed := bytes.TrimSpace(r.Fields)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return f
	}
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return resultFields{}
	}
	return f
}

// optionalText accepts a string, number, boolean or null. Anything else
// (objects, arrays) reads as absent.
type optionalText string

func (o *optionalText) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		*o = ""
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*o = optionalText(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return err
		}
		*o = optionalText(strconv.FormatBool(b))
	case 'n', '{', '[':
		*o = ""
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return err
		}
		*o = optionalText(n.String())
	}
	return nil
}

func (o optionalText) or(placeholder string) string {
	if o == "" {
		return placeholder
	}
	return string(o)
}

// Decode turns a radius search payload into places, in response order,
// filling placeholders for absent or empty fields. A payload without
// searchResults has no places. A payload that is not a JSON object is a
// DecodeError.
func Decode(payload json.RawMessage) ([]NearbyPlace, failure.ClassifiedError) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &fetcher.DecodeError{
			Message:   "radius search response is not a JSON object",
			Retryable: false,
			Cause:     fetcher.ErrCauseUnexpectedShape,
		}
	}

	var resp radiusResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, &fetcher.DecodeError{
			Message:   fmt.Sprintf("radius search response: %v", err),
			Retryable: false,
			Cause:     fetcher.ErrCauseUnexpectedShape,
		}
	}

	found := make([]NearbyPlace, 0, len(resp.SearchResults))
	for _, result := range resp.SearchResults {
		fields := result.fields()
		found = append(found, NearbyPlace{
			Name:     result.Name.or(PlaceholderName),
			Category: result.Category.or(PlaceholderCategory),
			Address:  fields.Address.or(PlaceholderAddress),
			City:     fields.City.or(PlaceholderCity),
		})
	}
	return found, nil
}
