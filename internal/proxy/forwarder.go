// Package proxy relays logger API requests to a live controller.
package proxy

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/imishinist/logger-dev/internal/apierr"
)

// hopByHop lists headers that apply to a single connection and are never relayed.
var hopByHop = map[string]struct{}{
	"connection":          {},
	"keep-alive":          {},
	"proxy-authenticate":  {},
	"proxy-authorization": {},
	"te":                  {},
	"trailers":            {},
	"transfer-encoding":   {},
	"upgrade":             {},
}

// IsHopByHop reports whether header must not be relayed. Matching ignores case.
func IsHopByHop(header string) bool {
	_, ok := hopByHop[strings.ToLower(header)]
	return ok
}

type Forwarder struct {
	base   string
	client *http.Client
	logger *slog.Logger
}

// New returns a forwarder for the controller at base (scheme://host:port).
// A zero timeout waits on the controller indefinitely.
func New(base string, timeout time.Duration, logger *slog.Logger) *Forwarder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Forwarder{
		base: strings.TrimRight(base, "/"),
		client: &http.Client{
			Timeout: timeout,
			// Bodies are relayed byte for byte, so never negotiate gzip on our own.
			Transport: &http.Transport{
				Proxy:              http.ProxyFromEnvironment,
				DisableCompression: true,
			},
		},
		logger: logger,
	}
}

// Target returns the controller URL for an incoming request URI.
func (f *Forwarder) Target(requestURI string) string {
	return f.base + requestURI
}

// Fetch issues a GET for requestURI against the controller. Transport failures
// are reported as apierr.ErrBadGateway.
func (f *Forwarder) Fetch(ctx context.Context, requestURI string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.Target(requestURI), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v: %w", err, apierr.ErrBadGateway)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, apierr.ErrBadGateway)
	}
	return resp, nil
}

func (f *Forwarder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestURI := r.RequestURI
	if !strings.HasPrefix(requestURI, "/") {
		requestURI = r.URL.RequestURI()
	}

	resp, err := f.Fetch(r.Context(), requestURI)
	if err != nil {
		f.logger.Error("proxy error", "target", f.Target(requestURI), "error", err)
		http.Error(w, "Proxy error: "+err.Error(), apierr.Status(err))
		return
	}
	defer resp.Body.Close()

	header := w.Header()
	for key, values := range resp.Header {
		if IsHopByHop(key) {
			continue
		}
		header.Del(key)
		for _, value := range values {
			header.Add(key, value)
		}
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		f.logger.Warn("proxy body copy interrupted", "target", f.Target(requestURI), "error", err)
	}
}
