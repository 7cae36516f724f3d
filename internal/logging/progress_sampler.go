package logging

import (
	"strings"
	"time"
)

// ProgressSampler suppresses repetitive progress logs while preserving signal
// when stages or percentage buckets change. Progress with an unknown total is
// rate limited by interval instead.
type ProgressSampler struct {
	bucketSize float64
	interval   time.Duration
	now        func() time.Time

	lastStage  string
	lastBucket int
	lastEmit   time.Time
}

// NewProgressSampler constructs a sampler that emits when the percent crosses
// bucket boundaries (default 5%) or when the stage changes.
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 5
	}
	return &ProgressSampler{bucketSize: bucketSize, interval: 10 * time.Second, now: time.Now, lastBucket: -1}
}

// WithInterval sets the minimum spacing between indeterminate progress lines.
func (s *ProgressSampler) WithInterval(interval time.Duration) *ProgressSampler {
	if s != nil && interval > 0 {
		s.interval = interval
	}
	return s
}

// ShouldLog reports whether a progress event should be logged. A negative
// percent means the total is unknown.
func (s *ProgressSampler) ShouldLog(percent float64, stage string) bool {
	if s == nil {
		return true
	}
	now := s.now()
	stage = strings.TrimSpace(stage)
	emit := false
	if stage != "" && stage != s.lastStage {
		s.lastStage = stage
		s.lastBucket = -1
		emit = true
	}
	if percent >= 0 {
		bucket := int(percent / s.bucketSize)
		if percent >= 100 {
			bucket = int(100 / s.bucketSize)
		}
		if bucket > s.lastBucket {
			s.lastBucket = bucket
			emit = true
		}
	} else if s.lastEmit.IsZero() || now.Sub(s.lastEmit) >= s.interval {
		emit = true
	}
	if emit {
		s.lastEmit = now
	}
	return emit
}

// Reset clears the sampler state (e.g. when a new task starts).
func (s *ProgressSampler) Reset() {
	if s == nil {
		return
	}
	s.lastStage = ""
	s.lastBucket = -1
	s.lastEmit = time.Time{}
}
