package proxy

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"
)

// DefaultTimeout bounds each connect attempt.
const DefaultTimeout = time.Second

// Candidate is a local proxy endpoint worth probing.
type Candidate struct {
	Scheme string
	Host   string
	Port   int
}

// URL renders the candidate as a proxy URL.
func (c Candidate) URL() string {
	return fmt.Sprintf("%s://%s", c.Scheme, net.JoinHostPort(c.Host, strconv.Itoa(c.Port)))
}

// DefaultCandidates are the ports common desktop proxy clients listen on.
func DefaultCandidates() []Candidate {
	return []Candidate{
		{Scheme: "socks5", Host: "127.0.0.1", Port: 1080},
		{Scheme: "socks5", Host: "127.0.0.1", Port: 10808},
		{Scheme: "http", Host: "127.0.0.1", Port: 7890},
		{Scheme: "http", Host: "127.0.0.1", Port: 8080},
		{Scheme: "http", Host: "127.0.0.1", Port: 10809},
	}
}

// Dialer opens TCP connections. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Option configures a Prober.
type Option func(*Prober)

// WithCandidates replaces the probed endpoints.
func WithCandidates(candidates []Candidate) Option {
	return func(p *Prober) {
		p.candidates = candidates
	}
}

// WithDialer injects a dialer (primarily for tests).
func WithDialer(d Dialer) Option {
	return func(p *Prober) {
		if d != nil {
			p.dialer = d
		}
	}
}

// WithTimeout overrides the per-candidate connect timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Prober) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

// Prober checks candidate endpoints in order.
type Prober struct {
	candidates []Candidate
	dialer     Dialer
	timeout    time.Duration
}

// New constructs a Prober with the default candidates.
func New(opts ...Option) *Prober {
	p := &Prober{
		candidates: DefaultCandidates(),
		dialer:     &net.Dialer{},
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Discover returns the URL of the first candidate accepting a TCP connection,
// or "" when none does or ctx ends first.
func (p *Prober) Discover(ctx context.Context) string {
	for _, candidate := range p.candidates {
		if ctx.Err() != nil {
			return ""
		}
		if p.reachable(ctx, candidate) {
			return candidate.URL()
		}
	}
	return ""
}

func (p *Prober) reachable(ctx context.Context, c Candidate) bool {
	dialCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	conn, err := p.dialer.DialContext(dialCtx, "tcp", net.JoinHostPort(c.Host, strconv.Itoa(c.Port)))
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// Discover probes the default candidates.
func Discover(ctx context.Context) string {
	return New().Discover(ctx)
}
