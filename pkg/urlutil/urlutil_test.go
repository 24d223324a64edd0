package urlutil_test

import (
	"testing"

	"github.com/rohmanhakim/nps-sites/pkg/urlutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	base, err := urlutil.ParseAbsolute("https://www.nps.gov")
	require.NoError(t, err)

	tests := []struct {
		name    string
		href    string
		want    string
		wantErr bool
	}{
		{
			name: "root relative path",
			href: "/state/mi/index.htm",
			want: "https://www.nps.gov/state/mi/index.htm",
		},
		{
			name: "trailing slash path",
			href: "/isro/",
			want: "https://www.nps.gov/isro/",
		},
		{
			name: "surrounding whitespace is trimmed",
			href: "  /slbe/index.htm \n",
			want: "https://www.nps.gov/slbe/index.htm",
		},
		{
			name: "absolute href kept",
			href: "https://example.com/other",
			want: "https://example.com/other",
		},
		{
			name: "fragment dropped",
			href: "/piro/index.htm#top",
			want: "https://www.nps.gov/piro/index.htm",
		},
		{
			name:    "empty href",
			href:    "   ",
			wantErr: true,
		},
		{
			name:    "unparseable href",
			href:    "http://[::1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := urlutil.Resolve(base, tt.href)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseAbsolute(t *testing.T) {
	_, err := urlutil.ParseAbsolute("https://www.nps.gov")
	assert.NoError(t, err)

	_, err = urlutil.ParseAbsolute("/state/mi/index.htm")
	assert.Error(t, err)

	_, err = urlutil.ParseAbsolute("www.nps.gov")
	assert.Error(t, err)
}
