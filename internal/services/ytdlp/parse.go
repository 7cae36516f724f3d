package ytdlp

import (
	"encoding/json"
	"strings"
	"time"

	"vidq/internal/media"
)

type progressPayload struct {
	Status             string  `json:"status"`
	DownloadedBytes    float64 `json:"downloaded_bytes"`
	TotalBytes         float64 `json:"total_bytes"`
	TotalBytesEstimate float64 `json:"total_bytes_estimate"`
	Speed              float64 `json:"speed"`
	ETA                float64 `json:"eta"`
	Filename           string  `json:"filename"`
	FragmentIndex      int     `json:"fragment_index"`
	FragmentCount      int     `json:"fragment_count"`
}

// parseProgress decodes one --progress-template payload. Null fields decode
// as zero, which media.Progress treats as "not reported".
func parseProgress(payload string) (media.Progress, bool) {
	var raw progressPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(payload)), &raw); err != nil {
		return media.Progress{}, false
	}
	status := media.ProgressStatus(strings.ToLower(raw.Status))
	switch status {
	case media.ProgressDownloading, media.ProgressFinished, media.ProgressError:
	default:
		return media.Progress{}, false
	}
	return media.Progress{
		Status:        status,
		Downloaded:    int64(raw.DownloadedBytes),
		Total:         int64(raw.TotalBytes),
		TotalEstimate: int64(raw.TotalBytesEstimate),
		Speed:         raw.Speed,
		ETA:           time.Duration(raw.ETA * float64(time.Second)),
		Filename:      raw.Filename,
		FragmentIndex: raw.FragmentIndex,
		FragmentCount: raw.FragmentCount,
	}, true
}

type metadataPayload struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Uploader       string  `json:"uploader"`
	Duration       float64 `json:"duration"`
	Filesize       float64 `json:"filesize"`
	FilesizeApprox float64 `json:"filesize_approx"`
}

func parseMetadata(payload []byte) (media.Metadata, error) {
	var raw metadataPayload
	if err := json.Unmarshal(payload, &raw); err != nil {
		return media.Metadata{}, err
	}
	size := raw.Filesize
	if size <= 0 {
		size = raw.FilesizeApprox
	}
	return media.Metadata{
		ID:         raw.ID,
		Title:      raw.Title,
		Uploader:   raw.Uploader,
		Duration:   time.Duration(raw.Duration * float64(time.Second)),
		ApproxSize: int64(size),
	}, nil
}

type listingPayload struct {
	Type    string          `json:"_type"`
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Entries []*entryPayload `json:"entries"`
}

type entryPayload struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

func parseListing(payload []byte) (media.Listing, error) {
	var raw listingPayload
	if err := json.Unmarshal(payload, &raw); err != nil {
		return media.Listing{}, err
	}
	listing := media.Listing{
		IsPlaylist: raw.Type == "playlist" || raw.Type == "multi_video",
		ID:         raw.ID,
		Title:      raw.Title,
	}
	if !listing.IsPlaylist {
		return listing, nil
	}
	listing.Entries = make([]*media.Entry, 0, len(raw.Entries))
	for _, entry := range raw.Entries {
		if entry == nil {
			listing.Entries = append(listing.Entries, nil)
			continue
		}
		listing.Entries = append(listing.Entries, &media.Entry{ID: entry.ID, URL: entry.URL, Title: entry.Title})
	}
	return listing, nil
}

type outcomePayload struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Ext      string `json:"ext"`
	Filepath string `json:"filepath"`
}

func parseOutcome(payload string) (media.Outcome, bool) {
	var raw outcomePayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(payload)), &raw); err != nil {
		return media.Outcome{}, false
	}
	return media.Outcome{ID: raw.ID, Title: raw.Title, Ext: raw.Ext, Filename: raw.Filepath}, true
}
