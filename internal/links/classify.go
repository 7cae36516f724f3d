package links

import (
	"net/url"
	"strings"
)

const (
	videoParam = "v"
	listParam  = "list"
	indexParam = "index"

	// WatchURLPrefix is the canonical single-video URL prefix.
	WatchURLPrefix = "https://www.youtube.com/watch?v="
)

// Classify canonicalizes raw and reports whether it refers only to a playlist.
//
// A URL carrying both a video and a playlist parameter is reduced to the single
// video: every list and index parameter is removed and the remaining
// parameters keep their original order and encoding. A URL with only a
// playlist parameter is returned unchanged with playlistOnly set. Parameters
// with empty values count as absent; whitespace is a value. Unparseable input
// is returned unchanged.
func Classify(raw string) (cleaned string, playlistOnly bool) {
	if _, err := url.Parse(raw); err != nil {
		return raw, false
	}
	base, query, fragment, ok := splitQuery(raw)
	if !ok {
		return raw, false
	}

	params := strings.Split(query, "&")
	var hasVideo, hasList bool
	for _, param := range params {
		key, value := splitParam(param)
		if value == "" {
			continue
		}
		switch key {
		case videoParam:
			hasVideo = true
		case listParam:
			hasList = true
		}
	}

	switch {
	case hasVideo && hasList:
		kept := make([]string, 0, len(params))
		for _, param := range params {
			if param == "" {
				continue
			}
			if key, _ := splitParam(param); key == listParam || key == indexParam {
				continue
			}
			kept = append(kept, param)
		}
		var b strings.Builder
		b.Grow(len(raw))
		b.WriteString(base)
		if len(kept) > 0 {
			b.WriteByte('?')
			b.WriteString(strings.Join(kept, "&"))
		}
		b.WriteString(fragment)
		return b.String(), false
	case hasList:
		return raw, true
	default:
		return raw, false
	}
}

// WatchURL builds the canonical watch URL for a video identifier.
func WatchURL(id string) string {
	return WatchURLPrefix + id
}

// VideoID extracts a video identifier from a watch URL (v parameter), a
// youtu.be short link, a /shorts/ or /embed/ path, or a bare identifier token.
func VideoID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if !strings.Contains(raw, "/") && !strings.ContainsAny(raw, "?&=# ") {
		return raw, true
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if id := parsed.Query().Get(videoParam); id != "" {
		return id, true
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	switch {
	case host == "youtu.be" && len(segments) > 0 && segments[0] != "":
		return segments[0], true
	case len(segments) == 2 && (segments[0] == "shorts" || segments[0] == "embed" || segments[0] == "live") && segments[1] != "":
		return segments[1], true
	}
	return "", false
}

// splitQuery separates raw into the part before '?', the raw query, and the
// fragment including its '#'. ok is false when raw has no query.
func splitQuery(raw string) (base, query, fragment string, ok bool) {
	head := raw
	if idx := strings.IndexByte(raw, '#'); idx >= 0 {
		head, fragment = raw[:idx], raw[idx:]
	}
	idx := strings.IndexByte(head, '?')
	if idx < 0 {
		return raw, "", "", false
	}
	return head[:idx], head[idx+1:], fragment, true
}

func splitParam(param string) (key, value string) {
	key, value, _ = strings.Cut(param, "=")
	if unescaped, err := url.QueryUnescape(key); err == nil {
		key = unescaped
	}
	if unescaped, err := url.QueryUnescape(value); err == nil {
		value = unescaped
	}
	return key, value
}
