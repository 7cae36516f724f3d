package ytdlp

import (
	"strconv"
	"time"

	"vidq/internal/media"
)

const (
	progressPrefix = "vidq-progress:"
	resultPrefix   = "vidq-result:"
)

// buildFetchArgs maps opts onto yt-dlp flags. Progress and the final file are
// reported as JSON lines carrying the prefixes above.
func buildFetchArgs(opts media.FetchOptions, url string) []string {
	args := []string{
		"--newline",
		"--no-colors",
		"--progress",
		"--progress-template", "download:" + progressPrefix + "%(progress)j",
		"--no-simulate",
		"--print", "after_move:" + resultPrefix + "%(.{id,title,ext,filepath})j",
	}
	if opts.OutputTemplate != "" {
		args = append(args, "--output", opts.OutputTemplate)
	}
	if opts.Format != "" {
		args = append(args, "--format", opts.Format)
	}
	args = append(args,
		"--retries", strconv.Itoa(opts.Retries),
		"--fragment-retries", strconv.Itoa(opts.FragmentRetries),
		"--extractor-retries", strconv.Itoa(opts.ExtractorRetries),
	)
	if opts.SocketTimeout > 0 {
		args = append(args, "--socket-timeout", seconds(opts.SocketTimeout))
	}
	if opts.SleepInterval > 0 {
		args = append(args, "--sleep-interval", seconds(opts.SleepInterval))
	}
	if opts.MaxSleepInterval > 0 {
		args = append(args, "--max-sleep-interval", seconds(opts.MaxSleepInterval))
	}
	if opts.SleepRequests > 0 {
		args = append(args, "--sleep-requests", seconds(opts.SleepRequests))
	}
	if opts.ConcurrentFragments > 0 {
		args = append(args, "--concurrent-fragments", strconv.Itoa(opts.ConcurrentFragments))
	}
	if opts.BufferSize > 0 {
		args = append(args, "--buffer-size", strconv.FormatInt(opts.BufferSize, 10))
	}
	if opts.HTTPChunkSize > 0 {
		args = append(args, "--http-chunk-size", strconv.FormatInt(opts.HTTPChunkSize, 10))
	}
	if opts.NoPlaylist {
		args = append(args, "--no-playlist")
	}
	if opts.Proxy != "" {
		args = append(args, "--proxy", opts.Proxy)
	}
	return append(args, "--", url)
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
