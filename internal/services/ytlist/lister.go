package ytlist

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"

	"vidq/internal/links"
	"vidq/internal/media"
	"vidq/internal/services"
)

const defaultTimeout = 60 * time.Second

type itemSource func(ctx context.Context, playlistID string) ([]media.Entry, error)

// Lister lists YouTube playlists through the native ytdlp library, without
// spawning a subprocess.
type Lister struct {
	timeout time.Duration
	source  itemSource
}

// Option configures a Lister.
type Option func(*Lister)

// WithTimeout bounds a single listing call.
func WithTimeout(timeout time.Duration) Option {
	return func(l *Lister) {
		if timeout > 0 {
			l.timeout = timeout
		}
	}
}

// New constructs a native playlist lister.
func New(opts ...Option) *Lister {
	l := &Lister{timeout: defaultTimeout, source: fetchItems}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// List returns the flat listing for a playlist URL. URLs without a list
// parameter are reported as non-playlists.
func (l *Lister) List(ctx context.Context, rawURL string) (media.Listing, error) {
	playlistID := PlaylistID(rawURL)
	if playlistID == "" {
		return media.Listing{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	items, err := l.source(ctx, playlistID)
	if err != nil {
		return media.Listing{}, services.Wrap(services.ErrExtraction, "list", "ytdlp", "playlist items", err)
	}
	listing := media.Listing{IsPlaylist: true, ID: playlistID, Entries: make([]*media.Entry, 0, len(items))}
	for i := range items {
		entry := items[i]
		if entry.ID != "" && entry.URL == "" {
			entry.URL = links.WatchURL(entry.ID)
		}
		listing.Entries = append(listing.Entries, &entry)
	}
	return listing, nil
}

// PlaylistID extracts the list parameter from rawURL.
func PlaylistID(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(parsed.Query().Get("list"))
}

func fetchItems(ctx context.Context, playlistID string) ([]media.Entry, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}
	entries := make([]media.Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, media.Entry{ID: item.VideoID, Title: item.Title})
	}
	return entries, nil
}
