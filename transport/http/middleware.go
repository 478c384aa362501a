package http

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// loggingTransport logs every backend round trip at debug level
type loggingTransport struct {
	next   http.RoundTripper
	logger zerolog.Logger
}

// WithLogging wraps next so each request is logged; a nil next uses http.DefaultTransport
func WithLogging(next http.RoundTripper, logger zerolog.Logger) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &loggingTransport{next: next, logger: logger}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	event := t.logger.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Dur("elapsed", time.Since(start))
	if err != nil {
		event.Err(err).Msg("request failed")
		return nil, err
	}
	event.Int("status", resp.StatusCode).Msg("request done")
	return resp, nil
}
