// Package view renders dashboard data and status text for the terminal.
package view

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/layer-3/tidbit/core"
	"github.com/layer-3/tidbit/ports"
)

// Placeholders for absent document fields
const (
	NoLabel = "(no label)"
	NoOwner = "N/A"
)

// SessionInfo pretty-prints a raw JSON session document with two-space indent.
// Bodies that are not JSON are shown as-is.
func SessionInfo(raw []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(raw), "", "  "); err != nil {
		return string(raw)
	}
	return out.String()
}

// Documents renders one block per document
func Documents(docs []core.DocumentSummary) string {
	var b strings.Builder
	for _, doc := range docs {
		b.WriteString(Document(doc))
	}
	return b.String()
}

// Document renders a single document block
func Document(doc core.DocumentSummary) string {
	label := doc.Label
	if label == "" {
		label = NoLabel
	}
	owner := doc.OwnerWallet
	if owner == "" {
		owner = NoOwner
	}
	return fmt.Sprintf("%s\nHash: %s\nDoc ID: %s\nOwner: %s\n%s\n",
		label, doc.HashHex, doc.LogicalID, owner, strings.Repeat("-", 40))
}

// Area is an in-memory display area
type Area struct {
	mu      sync.Mutex
	content string
}

var _ ports.Display = (*Area)(nil)

// Replace swaps the content
func (a *Area) Replace(content string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.content = content
}

// String returns the current content
func (a *Area) String() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.content
}

// Section writes each replacement to W under a heading
type Section struct {
	Title string
	W     io.Writer

	mu sync.Mutex
}

var _ ports.Display = (*Section)(nil)

// Replace prints content as a new section
func (s *Section) Replace(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.W, "== %s ==\n%s\n", s.Title, strings.TrimRight(content, "\n"))
}

// StatusLine prints status updates to W and keeps the latest
type StatusLine struct {
	W io.Writer

	mu   sync.Mutex
	last string
}

var _ ports.StatusReporter = (*StatusLine)(nil)

// SetStatus records and, when W is set, prints text
func (s *StatusLine) SetStatus(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = text
	if s.W != nil {
		fmt.Fprintln(s.W, text)
	}
}

// Last returns the latest status
func (s *StatusLine) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
