// Package fetch retrieves page HTML. Most sites are a plain GET; hosts
// that only render through JavaScript (Instagram and friends) go
// through an isolated headless browser instead.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Mode string

const (
	// ModeAuto picks the strategy from the URL host.
	ModeAuto    Mode = "auto"
	ModeStatic  Mode = "static"
	ModeDynamic Mode = "dynamic"
)

// DefaultDynamicHosts are hosts that never serve usable HTML to a bare
// GET.
var DefaultDynamicHosts = []string{"instagram.com"}

type Options struct {
	URL          string
	Mode         Mode
	Timeout      time.Duration
	UserAgent    string
	Headless     bool
	DynamicHosts []string
}

type Result struct {
	HTML      string
	FinalMode Mode
}

// Error wraps any network or browser failure with the URL it was for.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("fetch %s: %v", e.URL, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

var staticFetch = fetchStatic
var dynamicFetch = fetchDynamic

func Fetch(ctx context.Context, opts Options) (Result, error) {
	if opts.URL == "" {
		return Result{}, &Error{URL: opts.URL, Err: errors.New("url is required")}
	}
	if opts.Timeout == 0 {
		opts.Timeout = 45 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "recipeclip/1.0"
	}
	if opts.Mode == "" || opts.Mode == ModeAuto {
		if NeedsBrowser(opts.URL, opts.DynamicHosts) {
			opts.Mode = ModeDynamic
		} else {
			opts.Mode = ModeStatic
		}
	}

	switch opts.Mode {
	case ModeStatic:
		html, err := staticFetch(ctx, opts)
		if err != nil {
			return Result{}, &Error{URL: opts.URL, Err: err}
		}
		return Result{HTML: html, FinalMode: ModeStatic}, nil
	case ModeDynamic:
		html, err := dynamicFetch(ctx, opts)
		if err != nil {
			return Result{}, &Error{URL: opts.URL, Err: err}
		}
		return Result{HTML: html, FinalMode: ModeDynamic}, nil
	default:
		return Result{}, &Error{URL: opts.URL, Err: fmt.Errorf("unknown mode: %s", opts.Mode)}
	}
}

// NeedsBrowser reports whether the URL's host matches one of the
// configured JS-rendering-required hosts, subdomains included.
func NeedsBrowser(rawURL string, hosts []string) bool {
	if len(hosts) == 0 {
		hosts = DefaultDynamicHosts
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

func fetchStatic(ctx context.Context, opts Options) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	client := &http.Client{Timeout: opts.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("static fetch timed out after %s", opts.Timeout)
		}
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("http status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
