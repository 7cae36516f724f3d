// Command vidq downloads videos and playlists listed in a file or on the
// command line, one at a time, and prints a summary of what succeeded.
//
// Subcommands cover configuration (config init, config validate), an
// environment check (doctor), and a URL classification helper (classify).
package main
