package http

import (
	"fmt"
	"net/http"

	"github.com/layer-3/tidbit/core"
)

// StatusError is returned for any non-success response
type StatusError struct {
	Op   string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.Op, e.Code, http.StatusText(e.Code))
}

// Is matches core.ErrUnauthorized for 401 and core.ErrUnexpectedStatus for every status
func (e *StatusError) Is(target error) bool {
	switch target {
	case core.ErrUnauthorized:
		return e.Code == http.StatusUnauthorized
	case core.ErrUnexpectedStatus:
		return true
	}
	return false
}
