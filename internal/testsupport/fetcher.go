package testsupport

import (
	"context"
	"errors"
	"sync"

	"vidq/internal/media"
)

// FetchScript describes how StubFetcher responds for one URL.
type FetchScript struct {
	Events  []media.Progress
	Outcome media.Outcome
	Err     error
	Panic   any
}

// StubFetcher is an in-memory fetch service. Unknown URLs fetch successfully
// with a title derived from the URL; probes return ProbeMeta unless
// ProbeErr is set.
type StubFetcher struct {
	mu sync.Mutex

	Scripts   map[string]FetchScript
	ProbeMeta map[string]media.Metadata
	ProbeErr  error
	Listings  map[string]media.Listing
	ListErr   error

	Probed  []string
	Fetched []string
	Options []media.FetchOptions
	Listed  []string
}

// NewStubFetcher returns an empty StubFetcher.
func NewStubFetcher() *StubFetcher {
	return &StubFetcher{
		Scripts:   map[string]FetchScript{},
		ProbeMeta: map[string]media.Metadata{},
		Listings:  map[string]media.Listing{},
	}
}

// Probe implements engine.Fetcher.
func (s *StubFetcher) Probe(_ context.Context, url string) (media.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Probed = append(s.Probed, url)
	if s.ProbeErr != nil {
		return media.Metadata{}, s.ProbeErr
	}
	return s.ProbeMeta[url], nil
}

// Fetch implements engine.Fetcher.
func (s *StubFetcher) Fetch(ctx context.Context, url string, opts media.FetchOptions, onProgress func(media.Progress)) (media.Outcome, error) {
	s.mu.Lock()
	s.Fetched = append(s.Fetched, url)
	s.Options = append(s.Options, opts)
	script, ok := s.Scripts[url]
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return media.Outcome{}, err
	}
	if !ok {
		return media.Outcome{Title: "Title of " + url, Filename: url + ".mp4"}, nil
	}
	for _, event := range script.Events {
		if onProgress != nil {
			onProgress(event)
		}
	}
	if script.Panic != nil {
		panic(script.Panic)
	}
	if script.Err != nil {
		return media.Outcome{}, script.Err
	}
	return script.Outcome, nil
}

// List implements playlist.Lister.
func (s *StubFetcher) List(_ context.Context, url string) (media.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Listed = append(s.Listed, url)
	if s.ListErr != nil {
		return media.Listing{}, s.ListErr
	}
	listing, ok := s.Listings[url]
	if !ok {
		return media.Listing{}, errors.New("no listing scripted")
	}
	return listing, nil
}
