// Package proxy finds a locally running HTTP or SOCKS proxy by probing the
// ports popular desktop proxy clients listen on.
package proxy
