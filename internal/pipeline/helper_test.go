package pipeline_test

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/rohmanhakim/nps-sites/pkg/failure"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

// setupPage expects exactly one FetchText for key and answers with body.
func setupPage(m *fetcherMock, key string, body string) {
	m.On("FetchText", mock.Anything, key).Return(body, nil).Once()
}

func setupPageError(m *fetcherMock, key string, err failure.ClassifiedError) {
	m.On("FetchText", mock.Anything, key).Return("", err).Once()
}

func mustParseURL(t *testing.T, raw string) url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return *u
}

const rootURL = "https://www.nps.gov"

const directoryPage = `<div class="SearchBar-keywordSearch">
<a href="/state/mi/index.htm">Michigan</a>
<a href="/state/wy/index.htm">Wyoming</a>
</div>`

const statePage = `<div id="parkListResultsArea"><ul>
<li class="clearfix"><h3><a href="/isro/">Isle Royale</a></h3></li>
<li class="clearfix"><h3>no link here</h3></li>
<li class="clearfix"><h3><a href="/slbe/">Sleeping Bear Dunes</a></h3></li>
</ul></div>`

func detailPage(name, category, locality, region, zip, phone string) string {
	return `<div class="Hero-titleContainer"><a href="#">` + name + `</a>` +
		`<span class="Hero-designation">` + category + `</span></div>` +
		`<div class="vcard">` +
		`<span itemprop="addressLocality">` + locality + `</span>` +
		`<span itemprop="addressRegion">` + region + `</span>` +
		`<span itemprop="postalCode">` + zip + `</span>` +
		`<span class="tel">` + phone + `</span></div>`
}
