package links_test

import (
	"testing"

	"vidq/internal/links"
)

var classifyCases = []struct {
	name         string
	raw          string
	wantCleaned  string
	wantPlaylist bool
}{
	{
		name:        "video inside playlist is reduced to the video",
		raw:         "https://www.youtube.com/watch?v=abc&list=PL1&index=3",
		wantCleaned: "https://www.youtube.com/watch?v=abc",
	},
	{
		name:         "playlist only",
		raw:          "https://www.youtube.com/playlist?list=PL1",
		wantCleaned:  "https://www.youtube.com/playlist?list=PL1",
		wantPlaylist: true,
	},
	{
		name:        "short link without query",
		raw:         "https://youtu.be/xyz",
		wantCleaned: "https://youtu.be/xyz",
	},
	{
		name:        "other parameters survive",
		raw:         "https://www.youtube.com/watch?v=abc&t=30&list=PL1",
		wantCleaned: "https://www.youtube.com/watch?v=abc&t=30",
	},
	{
		name:        "relative order and encoding preserved",
		raw:         "https://www.youtube.com/watch?list=PL1&t=1m30s&v=abc&index=2&feature=share&q=a%20b",
		wantCleaned: "https://www.youtube.com/watch?t=1m30s&v=abc&feature=share&q=a%20b",
	},
	{
		name:        "fragment preserved",
		raw:         "https://www.youtube.com/watch?v=abc&list=PL1#comments",
		wantCleaned: "https://www.youtube.com/watch?v=abc#comments",
	},
	{
		name:         "blank video value counts as absent",
		raw:          "https://www.youtube.com/watch?v=&list=PL1",
		wantCleaned:  "https://www.youtube.com/watch?v=&list=PL1",
		wantPlaylist: true,
	},
	{
		name:        "blank list value counts as absent",
		raw:         "https://www.youtube.com/watch?v=abc&list=",
		wantCleaned: "https://www.youtube.com/watch?v=abc&list=",
	},
	{
		name:        "whitespace video value is still present",
		raw:         "https://www.youtube.com/watch?v=%20&list=PL9",
		wantCleaned: "https://www.youtube.com/watch?v=%20",
	},
	{
		name:        "index without list is untouched",
		raw:         "https://www.youtube.com/watch?v=abc&index=3",
		wantCleaned: "https://www.youtube.com/watch?v=abc&index=3",
	},
	{
		name:        "repeated list parameters all stripped",
		raw:         "https://www.youtube.com/watch?list=PL1&v=abc&list=PL2",
		wantCleaned: "https://www.youtube.com/watch?v=abc",
	},
	{
		name:        "non youtube url",
		raw:         "https://example.com/video.mp4",
		wantCleaned: "https://example.com/video.mp4",
	},
	{
		name:        "unparseable input returned unchanged",
		raw:         "http://[::1",
		wantCleaned: "http://[::1",
	},
}

func TestClassify(t *testing.T) {
	for _, tt := range classifyCases {
		t.Run(tt.name, func(t *testing.T) {
			cleaned, playlist := links.Classify(tt.raw)
			if cleaned != tt.wantCleaned {
				t.Fatalf("cleaned = %q, want %q", cleaned, tt.wantCleaned)
			}
			if playlist != tt.wantPlaylist {
				t.Fatalf("playlistOnly = %v, want %v", playlist, tt.wantPlaylist)
			}
		})
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	for _, tt := range classifyCases {
		t.Run(tt.name, func(t *testing.T) {
			first, firstPlaylist := links.Classify(tt.raw)
			second, secondPlaylist := links.Classify(first)
			if first != second || firstPlaylist != secondPlaylist {
				t.Fatalf("classify not idempotent: (%q,%v) then (%q,%v)", first, firstPlaylist, second, secondPlaylist)
			}
		})
	}
}

func TestVideoID(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"https://www.youtube.com/watch?v=abc123", "abc123", true},
		{"https://youtu.be/xyz789?t=4", "xyz789", true},
		{"https://www.youtube.com/shorts/s1", "s1", true},
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/playlist?list=PL1", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := links.VideoID(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("VideoID(%q) = (%q,%v), want (%q,%v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
	if links.WatchURL("abc") != "https://www.youtube.com/watch?v=abc" {
		t.Fatalf("unexpected watch url: %s", links.WatchURL("abc"))
	}
}
