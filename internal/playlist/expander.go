package playlist

import (
	"context"
	"log/slog"
	"strings"

	"vidq/internal/links"
	"vidq/internal/logging"
	"vidq/internal/media"
	"vidq/internal/services"
)

// Lister produces a flat listing for a URL: entries carry identifiers only
// and playlist traversal is enabled.
type Lister interface {
	List(ctx context.Context, url string) (media.Listing, error)
}

// Expander turns playlist URLs into canonical per-video URLs.
type Expander struct {
	lister Lister
	logger *slog.Logger
}

// NewExpander constructs an Expander backed by lister.
func NewExpander(lister Lister, logger *slog.Logger) *Expander {
	return &Expander{lister: lister, logger: logging.NewComponentLogger(logger, "playlist")}
}

// Expand lists playlistURL and returns one canonical watch URL per entry in
// listing order. Entries without a usable identifier are skipped. A listing
// error or a non-playlist resource yields no URLs and an error tagged with
// services.ErrExtraction.
func (e *Expander) Expand(ctx context.Context, playlistURL string) ([]string, error) {
	ctx = services.WithStage(ctx, "expand")
	logger := logging.WithContext(ctx, e.logger)

	listing, err := e.lister.List(ctx, playlistURL)
	if err != nil {
		return nil, services.Wrap(services.ErrExtraction, "expand", "list", "playlist listing failed", err)
	}
	if !listing.IsPlaylist {
		return nil, services.Wrap(services.ErrExtraction, "expand", "list", "resource is not a playlist", nil)
	}

	urls := make([]string, 0, len(listing.Entries))
	skipped := 0
	for _, entry := range listing.Entries {
		id, ok := entryID(entry)
		if !ok {
			skipped++
			continue
		}
		urls = append(urls, links.WatchURL(id))
	}
	if skipped > 0 {
		logger.Debug("skipped playlist entries without identifier",
			logging.Int("skipped", skipped),
			logging.String(logging.FieldURL, playlistURL),
		)
	}
	return urls, nil
}

func entryID(entry *media.Entry) (string, bool) {
	if entry == nil {
		return "", false
	}
	if id := strings.TrimSpace(entry.ID); id != "" {
		return id, true
	}
	return links.VideoID(entry.URL)
}
