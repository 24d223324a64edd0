package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/rohmanhakim/nps-sites/internal/extractor"
	"github.com/rohmanhakim/nps-sites/internal/places"
	"github.com/rohmanhakim/nps-sites/pkg/failure"
	"github.com/rohmanhakim/nps-sites/pkg/urlutil"
)

/*
Session is the interactive menu loop.

Responsibilities
- Ask for a state until a known state name or "exit" is entered
- List the national sites of that state
- Ask for a site number, "back" or "exit", then list places near the site

A failed step prints "[Error] ..." and returns to the prompt it came from.
End of input behaves like "exit".
*/

const separatorWidth = 50

type SiteSource interface {
	StateDirectory(ctx context.Context) (extractor.StateDirectory, failure.ClassifiedError)
	SitesForState(ctx context.Context, stateURL string) ([]extractor.SiteRecord, failure.ClassifiedError)
}

type PlaceFinder interface {
	Nearby(ctx context.Context, site extractor.SiteRecord) ([]places.NearbyPlace, failure.ClassifiedError)
}

type Session struct {
	scanner *bufio.Scanner
	out     io.Writer
	sites   SiteSource
	places  PlaceFinder
}

func NewSession(in io.Reader, out io.Writer, sites SiteSource, finder PlaceFinder) *Session {
	return &Session{
		scanner: bufio.NewScanner(in),
		out:     out,
		sites:   sites,
		places:  finder,
	}
}

// Run blocks until the user exits or input ends. Only a failure to load the
// state directory is returned; every later failure is printed and recovered.
func (s *Session) Run(ctx context.Context) error {
	directory, err := s.sites.StateDirectory(ctx)
	if err != nil {
		return err
	}

	for {
		state, ok := s.promptState(directory)
		if !ok {
			return nil
		}

		stateURL, _ := directory.Lookup(state)
		sites, err := s.sites.SitesForState(ctx, stateURL)
		if err != nil {
			s.printError(err)
			continue
		}

		s.printSites(state, sites)
		if !s.browseSites(ctx, sites) {
			return nil
		}
	}
}

// promptState returns the state as typed, or false on exit.
func (s *Session) promptState(directory extractor.StateDirectory) (string, bool) {
	for {
		input, ok := s.ask("Enter a state name (e.g. Michigan / michigan), or 'Exit / exit': ")
		if !ok || strings.EqualFold(input, "exit") {
			return "", false
		}
		if isNumeric(input) {
			s.printf("[Error] Sorry, that was not a valid input.\n")
			continue
		}
		if _, found := directory.Lookup(input); !found {
			s.printf("[Error] Sorry, that was not a valid state name. Enter a complete state name.\n")
			continue
		}
		return input, true
	}
}

// browseSites returns true on "back" and false on exit.
func (s *Session) browseSites(ctx context.Context, sites []extractor.SiteRecord) bool {
	if len(sites) == 0 {
		s.printf("No national sites listed for this state.\n")
		return true
	}

	for {
		input, ok := s.ask(fmt.Sprintf("Choose the number from 1 to %d for detail search or 'exit' or 'back': ", len(sites)))
		if !ok {
			return false
		}
		switch strings.ToLower(input) {
		case "exit":
			return false
		case "back":
			return true
		}

		site, err := selectSite(sites, input)
		if err != nil {
			s.printf("[Error] %s\n", err)
			continue
		}

		nearby, cerr := s.places.Nearby(ctx, site)
		if cerr != nil {
			s.printError(cerr)
			continue
		}
		s.printNearby(site, nearby)
	}
}

func (s *Session) printSites(state string, sites []extractor.SiteRecord) {
	s.printSeparator()
	s.printf("List of national sites in %s\n", state)
	s.printSeparator()
	for i, site := range sites {
		s.printf("[%d] %s\n", i+1, site)
	}
}

func (s *Session) printNearby(site extractor.SiteRecord, nearby []places.NearbyPlace) {
	s.printSeparator()
	s.printf("Places near %s\n", site.Name)
	s.printSeparator()
	for _, place := range nearby {
		s.printf("-%s\n", place)
	}
}

func (s *Session) printError(err error) {
	s.printf("[Error] %s\n", urlutil.RedactSecrets(err.Error()))
}

func (s *Session) printSeparator() {
	s.printf("%s\n", strings.Repeat("-", separatorWidth))
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// ask prints prompt and reads one trimmed line. false means input ended.
func (s *Session) ask(prompt string) (string, bool) {
	s.printf("%s", prompt)
	if !s.scanner.Scan() {
		s.printf("\n")
		return "", false
	}
	return strings.TrimSpace(s.scanner.Text()), true
}

// selectSite maps a 1-based choice onto sites.
func selectSite(sites []extractor.SiteRecord, choice string) (extractor.SiteRecord, error) {
	if !isNumeric(choice) {
		return extractor.SiteRecord{}, fmt.Errorf("Sorry, that was not a valid input. Choose a number from 1 to %d", len(sites))
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(sites) {
		return extractor.SiteRecord{}, fmt.Errorf("Choose the number from 1 to %d", len(sites))
	}
	return sites[n-1], nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
