package navigation

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/layer-3/tidbit/core"
	"github.com/layer-3/tidbit/ports"
)

// Recorder is a Navigator that remembers the last redirect, replacing the
// previous one the way a hard redirect replaces the history entry
type Recorder struct {
	logger zerolog.Logger

	mu    sync.Mutex
	page  core.Page
	count int
}

// NewRecorder creates a navigator that logs every redirect
func NewRecorder(logger zerolog.Logger) *Recorder {
	return &Recorder{logger: logger}
}

var _ ports.Navigator = (*Recorder)(nil)

// Navigate records page as the current location
func (r *Recorder) Navigate(page core.Page) {
	r.mu.Lock()
	r.page = page
	r.count++
	r.mu.Unlock()

	r.logger.Debug().
		Str("page", string(page)).
		Msg("redirect")
}

// Current returns the last redirect target; ok is false when none happened
func (r *Recorder) Current() (core.Page, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.page, r.count > 0
}

// Count returns how many redirects happened
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
