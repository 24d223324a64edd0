package places_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rohmanhakim/nps-sites/internal/cache"
	"github.com/rohmanhakim/nps-sites/internal/extractor"
	"github.com/rohmanhakim/nps-sites/internal/fetcher"
	"github.com/rohmanhakim/nps-sites/internal/places"
	"github.com/rohmanhakim/nps-sites/pkg/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const radiusEndpoint = "http://www.mapquestapi.com/search/v2/radius"

// fetcherMock is a testify mock for the Fetcher
type fetcherMock struct {
	mock.Mock
}

func (f *fetcherMock) FetchText(ctx context.Context, key string) (string, failure.ClassifiedError) {
	args := f.Called(ctx, key)
	var err failure.ClassifiedError
	if args.Get(1) != nil {
		err = args.Get(1).(failure.ClassifiedError)
	}
	return args.String(0), err
}

func (f *fetcherMock) FetchJSON(ctx context.Context, key string) (json.RawMessage, failure.ClassifiedError) {
	args := f.Called(ctx, key)
	var payload json.RawMessage
	if args.Get(0) != nil {
		payload = args.Get(0).(json.RawMessage)
	}
	var err failure.ClassifiedError
	if args.Get(1) != nil {
		err = args.Get(1).(failure.ClassifiedError)
	}
	return payload, err
}

var isleRoyale = extractor.SiteRecord{
	Category: "National Park",
	Name:     "Isle Royale",
	Address:  "Houghton, MI",
	Zipcode:  "49931",
	Phone:    "(906) 482-0984",
	URL:      "https://www.nps.gov/isro/",
}

func defaultParam(apiKey string) places.ClientParam {
	return places.NewClientParam(radiusEndpoint, apiKey, 10, 10, "ignore", "json")
}

func TestClient_RequestKey(t *testing.T) {
	client := places.NewClient(nil, new(fetcherMock), defaultParam("secret"))

	key, err := client.RequestKey(isleRoyale)

	require.Nil(t, err)
	assert.Equal(t,
		radiusEndpoint+"?ambiguities=ignore&key=secret&maxMatches=10&origin=49931&outFormat=json&radius=10",
		key)
}

func TestClient_Nearby(t *testing.T) {
	f := new(fetcherMock)
	key := radiusEndpoint + "?ambiguities=ignore&key=secret&maxMatches=10&origin=49931&outFormat=json&radius=10"
	f.On("FetchJSON", mock.Anything, key).
		Return(json.RawMessage(`{"searchResults":[{"name":"Cafe","fields":{"city":"Houghton"}}]}`), nil).
		Once()
	client := places.NewClient(nil, f, defaultParam("secret"))

	found, err := client.Nearby(context.Background(), isleRoyale)

	require.Nil(t, err)
	assert.Equal(t, []places.NearbyPlace{
		{Name: "Cafe", Category: "no category", Address: "no address", City: "Houghton"},
	}, found)
	f.AssertExpectations(t)
}

func TestClient_Nearby_MissingAPIKeySendsNothing(t *testing.T) {
	f := new(fetcherMock)
	client := places.NewClient(nil, f, defaultParam(""))

	_, err := client.Nearby(context.Background(), isleRoyale)

	require.NotNil(t, err)
	var requestErr *places.RequestError
	require.True(t, errors.As(err, &requestErr))
	assert.Equal(t, places.ErrCauseMissingAPIKey, requestErr.Cause)
	f.AssertNotCalled(t, "FetchJSON", mock.Anything, mock.Anything)
}

func TestClient_Nearby_MissingOrigin(t *testing.T) {
	f := new(fetcherMock)
	client := places.NewClient(nil, f, defaultParam("secret"))

	site := isleRoyale
	site.Zipcode = "  "
	_, err := client.Nearby(context.Background(), site)

	var requestErr *places.RequestError
	require.True(t, errors.As(err, &requestErr))
	assert.Equal(t, places.ErrCauseMissingOrigin, requestErr.Cause)
}

func TestClient_Nearby_FetchErrorPropagates(t *testing.T) {
	f := new(fetcherMock)
	transportErr := &fetcher.TransportError{Message: "down", Cause: fetcher.ErrCauseNonSuccessStatus, StatusCode: 503}
	f.On("FetchJSON", mock.Anything, mock.Anything).Return(nil, transportErr)
	client := places.NewClient(nil, f, defaultParam("secret"))

	_, err := client.Nearby(context.Background(), isleRoyale)

	assert.Same(t, transportErr, err)
}

func TestClient_Nearby_CachedAcrossCalls(t *testing.T) {
	var hits int32
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"searchResults":[{"name":"Cafe"}]}`))
	}))
	defer server.Close()

	store := cache.NewStore(cache.NewMemoryBackend(), nil)
	httpFetcher := fetcher.NewHTTPFetcher(nil, store, fetcher.NewFetchParam(nil, "test", nil, ""))
	client := places.NewClient(nil, httpFetcher, places.NewClientParam(server.URL+"/radius", "secret", 10, 10, "ignore", "json"))

	first, err := client.Nearby(context.Background(), isleRoyale)
	require.Nil(t, err)
	second, err := client.Nearby(context.Background(), isleRoyale)
	require.Nil(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Equal(t, "ambiguities=ignore&key=secret&maxMatches=10&origin=49931&outFormat=json&radius=10", gotQuery)

	key, _ := client.RequestKey(isleRoyale)
	value, ok := store.Get(key)
	require.True(t, ok)
	assert.Equal(t, cache.KindJSON, value.Kind())
}
