// Package ytdlp mediates access to the yt-dlp CLI, the fetch service behind
// every probe, flat playlist listing, and download.
//
// It builds command lines from media.FetchOptions, asks yt-dlp for JSON
// progress and result lines through --progress-template and --print, and
// parses them back into media types. Command execution goes through the
// Executor interface so tests can replay canned output without the binary.
package ytdlp
