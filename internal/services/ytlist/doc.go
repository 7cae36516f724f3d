// Package ytlist implements playlist listing on top of the native
// github.com/ytget/ytdlp library. It is the alternative to the yt-dlp
// subprocess lister, selected with engine.playlist_source = "native".
package ytlist
