package places_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/rohmanhakim/nps-sites/internal/fetcher"
	"github.com/rohmanhakim/nps-sites/internal/places"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []places.NearbyPlace
	}{
		{
			name:    "complete record",
			payload: `{"searchResults":[{"name":"Keweenaw Brewing","fields":{"address":"408 Shelden Ave","city":"Houghton","group_sic_code_name":"Eating Places"}}]}`,
			want: []places.NearbyPlace{
				{Name: "Keweenaw Brewing", Category: places.PlaceholderCategory, Address: "408 Shelden Ave", City: "Houghton"},
			},
		},
		{
			name:    "top level category is used as is",
			payload: `{"searchResults":[{"name":"A","category":"Museums","fields":{"group_sic_code_name":"Other"}}]}`,
			want: []places.NearbyPlace{
				{Name: "A", Category: "Museums", Address: places.PlaceholderAddress, City: places.PlaceholderCity},
			},
		},
		{
			name:    "all fields absent",
			payload: `{"searchResults":[{}]}`,
			want: []places.NearbyPlace{
				{Name: "no name", Category: "no category", Address: "no address", City: "no city"},
			},
		},
		{
			name:    "empty strings and nulls use placeholders",
			payload: `{"searchResults":[{"name":"","category":null,"fields":{"address":"","city":null}}]}`,
			want: []places.NearbyPlace{
				{Name: "no name", Category: "no category", Address: "no address", City: "no city"},
			},
		},
		{
			name:    "non string scalars are rendered",
			payload: `{"searchResults":[{"name":42,"fields":{"address":true,"city":1.5}}]}`,
			want: []places.NearbyPlace{
				{Name: "42", Category: "no category", Address: "true", City: "1.5"},
			},
		},
		{
			name:    "null fields block",
			payload: `{"searchResults":[{"name":"X","fields":null}]}`,
			want: []places.NearbyPlace{
				{Name: "X", Category: "no category", Address: "no address", City: "no city"},
			},
		},
		{
			name:    "fields block that is not an object reads as absent",
			payload: `{"searchResults":[{"name":"Good","category":"Cafes","fields":{"address":"1 Main St","city":"Houghton"}},{"name":"Odd","fields":"n/a"},{"name":"List","fields":[1,2]}]}`,
			want: []places.NearbyPlace{
				{Name: "Good", Category: "Cafes", Address: "1 Main St", City: "Houghton"},
				{Name: "Odd", Category: "no category", Address: "no address", City: "no city"},
				{Name: "List", Category: "no category", Address: "no address", City: "no city"},
			},
		},
		{
			name:    "missing searchResults",
			payload: `{"info":{"statuscode":0}}`,
			want:    []places.NearbyPlace{},
		},
		{
			name:    "order preserved",
			payload: `{"searchResults":[{"name":"first"},{"name":"second"},{"name":"third"}]}`,
			want: []places.NearbyPlace{
				{Name: "first", Category: "no category", Address: "no address", City: "no city"},
				{Name: "second", Category: "no category", Address: "no address", City: "no city"},
				{Name: "third", Category: "no category", Address: "no address", City: "no city"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := places.Decode(json.RawMessage(tt.payload))
			require.Nil(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_NotAnObject(t *testing.T) {
	for _, payload := range []string{`[]`, `"text"`, `42`, ``, `{"searchResults":"nope"}`} {
		_, err := places.Decode(json.RawMessage(payload))
		require.NotNil(t, err, payload)

		var decodeErr *fetcher.DecodeError
		require.True(t, errors.As(err, &decodeErr), payload)
		assert.Equal(t, fetcher.ErrCauseUnexpectedShape, decodeErr.Cause)
	}
}

func TestNearbyPlace_String(t *testing.T) {
	p := places.NearbyPlace{Name: "Cafe", Category: "Eating Places", Address: "1 Main St", City: "Houghton"}
	assert.Equal(t, "Cafe (Eating Places): 1 Main St, Houghton", p.String())
}
