package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rohmanhakim/nps-sites/internal/build"
	"github.com/rohmanhakim/nps-sites/internal/cache"
	"github.com/rohmanhakim/nps-sites/internal/extractor"
	"github.com/rohmanhakim/nps-sites/internal/places"
	"github.com/rohmanhakim/nps-sites/pkg/hashutil"
	"github.com/rohmanhakim/nps-sites/pkg/urlutil"
	"github.com/spf13/cobra"
)

const digestLength = 12

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "List the states found in the site directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *App) error {
			directory, err := app.pipeline.StateDirectory(cmd.Context())
			if err != nil {
				return err
			}
			renderStates(cmd.OutOrStdout(), directory)
			return nil
		})
	},
}

var sitesCmd = &cobra.Command{
	Use:   "sites <state>",
	Short: "List the national sites of a state",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state := strings.Join(args, " ")
		return withApp(func(app *App) error {
			sites, err := sitesForState(cmd.Context(), &app.pipeline, state)
			if err != nil {
				return err
			}
			renderSites(cmd.OutOrStdout(), state, sites)
			return nil
		})
	},
}

var nearbyCmd = &cobra.Command{
	Use:   "nearby <state> <n>",
	Short: "List places near the n-th national site of a state",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		state := strings.Join(args[:len(args)-1], " ")
		choice := args[len(args)-1]
		return withApp(func(app *App) error {
			sites, err := sitesForState(cmd.Context(), &app.pipeline, state)
			if err != nil {
				return err
			}
			site, err := selectSite(sites, choice)
			if err != nil {
				return err
			}
			nearby, cerr := app.places.Nearby(cmd.Context(), site)
			if cerr != nil {
				return cerr
			}
			renderNearby(cmd.OutOrStdout(), site, nearby)
			return nil
		})
	},
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Show the cached responses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *App) error {
			return renderCache(cmd.OutOrStdout(), app.Store(), app.Config().HashAlgo())
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "nps-sites %s (built %s)\n", build.FullVersion(), build.BuildTime)
	},
}

// sitesForState resolves a state name through the directory and loads its sites.
func sitesForState(ctx context.Context, source SiteSource, state string) ([]extractor.SiteRecord, error) {
	directory, err := source.StateDirectory(ctx)
	if err != nil {
		return nil, err
	}
	stateURL, found := directory.Lookup(state)
	if !found {
		return nil, fmt.Errorf("unknown state %q", state)
	}
	sites, err := source.SitesForState(ctx, stateURL)
	if err != nil {
		return nil, err
	}
	return sites, nil
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func renderStates(out io.Writer, directory extractor.StateDirectory) {
	t := newTable(out)
	t.AppendHeader(table.Row{"State", "URL"})
	for _, name := range directory.Names() {
		stateURL, _ := directory.Lookup(name)
		t.AppendRow(table.Row{name, stateURL})
	}
	t.Render()
}

func renderSites(out io.Writer, state string, sites []extractor.SiteRecord) {
	t := newTable(out)
	t.SetTitle("National sites in %s", state)
	t.AppendHeader(table.Row{"#", "Name", "Category", "Address", "Zipcode", "Phone"})
	for i, site := range sites {
		t.AppendRow(table.Row{i + 1, site.Name, site.Category, site.Address, site.Zipcode, site.Phone})
	}
	t.Render()
}

func renderNearby(out io.Writer, site extractor.SiteRecord, nearby []places.NearbyPlace) {
	t := newTable(out)
	t.SetTitle("Places near %s", site.Name)
	t.AppendHeader(table.Row{"Name", "Category", "Address", "City"})
	for _, place := range nearby {
		t.AppendRow(table.Row{place.Name, place.Category, place.Address, place.City})
	}
	t.Render()
}

func renderCache(out io.Writer, store *cache.Store, algo hashutil.HashAlgo) error {
	t := newTable(out)
	t.SetTitle("Cache %s", store.Location())
	t.AppendHeader(table.Row{"Key", "Kind", "Size", "Digest"})
	total := 0
	for _, key := range store.Keys() {
		value, _ := store.Get(key)
		body := value.Bytes()
		digest, err := hashutil.ShortDigest(body, algo, digestLength)
		if err != nil {
			return err
		}
		total += len(body)
		t.AppendRow(table.Row{urlutil.RedactSecrets(key), value.Kind(), len(body), digest})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d entries", store.Len()), "", total, ""})
	t.Render()
	return nil
}
