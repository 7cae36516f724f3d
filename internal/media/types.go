package media

import "time"

// Metadata is the best-effort description returned by a probe. Zero values
// mean "not reported".
type Metadata struct {
	ID         string
	Title      string
	Uploader   string
	Duration   time.Duration
	ApproxSize int64
}

// Entry is one item of a flat playlist listing. Entries may lack an ID when
// the source omits it.
type Entry struct {
	ID    string
	URL   string
	Title string
}

// Listing is the result of a flat (metadata only) listing of a resource.
type Listing struct {
	IsPlaylist bool
	ID         string
	Title      string
	Entries    []*Entry
}

// ProgressStatus is the phase reported by a progress event.
type ProgressStatus string

const (
	ProgressDownloading ProgressStatus = "downloading"
	ProgressFinished    ProgressStatus = "finished"
	ProgressError       ProgressStatus = "error"
)

// Progress is a single fetch progress event. Byte counts are zero when the
// fetch service did not report them.
type Progress struct {
	Status        ProgressStatus
	Downloaded    int64
	Total         int64
	TotalEstimate int64
	Speed         float64
	ETA           time.Duration
	Filename      string
	FragmentIndex int
	FragmentCount int
}

// KnownTotal returns the exact total when reported, else the estimate.
func (p Progress) KnownTotal() (int64, bool) {
	if p.Total > 0 {
		return p.Total, true
	}
	if p.TotalEstimate > 0 {
		return p.TotalEstimate, true
	}
	return 0, false
}

// Percent converts the event to a percentage clamped to [0, 100]. It reports
// false when no total is known.
func (p Progress) Percent() (float64, bool) {
	total, ok := p.KnownTotal()
	if !ok {
		return 0, false
	}
	pct := float64(p.Downloaded) / float64(total) * 100
	switch {
	case pct < 0:
		pct = 0
	case pct > 100:
		pct = 100
	}
	return pct, true
}

// FetchOptions is the complete option set for one fetch. Durations are
// truncated to whole seconds by backends that only accept integers.
type FetchOptions struct {
	OutputTemplate      string
	Format              string
	Retries             int
	FragmentRetries     int
	ExtractorRetries    int
	SocketTimeout       time.Duration
	SleepInterval       time.Duration
	MaxSleepInterval    time.Duration
	SleepRequests       time.Duration
	ConcurrentFragments int
	BufferSize          int64
	HTTPChunkSize       int64
	NoPlaylist          bool
	Proxy               string
}

// Outcome describes the file a successful fetch produced.
type Outcome struct {
	ID       string
	Title    string
	Ext      string
	Filename string
}
