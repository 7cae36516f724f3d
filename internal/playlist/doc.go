// Package playlist expands playlist URLs into individual video URLs using a
// flat listing from any Lister (the yt-dlp client or the native lister).
package playlist
