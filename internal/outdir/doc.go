// Package outdir creates the download directory once per run and guards it
// with an advisory flock so two runs never write into the same directory.
package outdir
