package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"vidq/internal/media"
)

// FormatDuration renders d as h:mm:ss, or m:ss under an hour.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Round(time.Second) / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// FormatMegabytes renders a byte count in mebibytes with one decimal.
func FormatMegabytes(bytes int64) string {
	return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
}

// describeMetadata renders the probe preview line; empty when nothing is known.
func describeMetadata(meta media.Metadata) string {
	parts := make([]string, 0, 3)
	if meta.Duration > 0 {
		parts = append(parts, "Duration: "+FormatDuration(meta.Duration))
	}
	if meta.ApproxSize > 0 {
		parts = append(parts, "Size: ~"+FormatMegabytes(meta.ApproxSize))
	}
	if uploader := strings.TrimSpace(meta.Uploader); uploader != "" {
		parts = append(parts, "Uploader: "+uploader)
	}
	return strings.Join(parts, " | ")
}

// describeProgress renders a plain-text progress line for non-interactive output.
func describeProgress(event media.Progress) string {
	var b strings.Builder
	if pct, ok := event.Percent(); ok {
		total, _ := event.KnownTotal()
		fmt.Fprintf(&b, "%5.1f%% of %s", pct, humanize.Bytes(uint64(total)))
	} else {
		fmt.Fprintf(&b, "%s downloaded", humanize.Bytes(uint64(max(event.Downloaded, 0))))
	}
	if event.Speed > 0 && !math.IsInf(event.Speed, 0) {
		fmt.Fprintf(&b, " at %s/s", humanize.Bytes(uint64(event.Speed)))
	}
	if event.ETA > 0 {
		fmt.Fprintf(&b, ", ETA %s", FormatDuration(event.ETA))
	}
	if event.FragmentCount > 0 {
		fmt.Fprintf(&b, " (frag %d/%d)", event.FragmentIndex, event.FragmentCount)
	}
	return b.String()
}
