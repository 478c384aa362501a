package ports

import "github.com/layer-3/tidbit/core"

// Navigator performs hard redirects between pages
type Navigator interface {
	Navigate(page core.Page)
}

// StatusReporter shows a one-line user-visible status
type StatusReporter interface {
	SetStatus(text string)
}

// Display is a designated area whose whole content can be replaced
type Display interface {
	Replace(content string)
}
