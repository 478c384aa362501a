// Package testkit provides a scriptable fake of the tidbit authentication API.
package testkit

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/layer-3/tidbit/core"
)

// Reply is a canned response; a zero Status means 200
type Reply struct {
	Status int
	Body   any
	Raw    string
}

// Backend is a fake backend. Replies are keyed by endpoint path and may be
// replaced at any time; every request is recorded.
type Backend struct {
	Server *httptest.Server

	mu       sync.Mutex
	replies  map[string]Reply
	requests []Request
	handlers map[string]gin.HandlerFunc
}

// Request is a recorded request
type Request struct {
	Method    string
	Path      string
	SessionID string
	Verify    *core.VerifyRequest
}

// NewBackend starts a fake backend with happy-path defaults and closes it at test end
func NewBackend(t testing.TB) *Backend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := &Backend{
		replies: map[string]Reply{
			"/auth/evm/nonce":  {Body: gin.H{"session_id": "s1", "nonce": "n1"}},
			"/auth/evm/verify": {Body: gin.H{"ok": true, "wallet": "0xaaa", "chain": "evm"}},
			"/auth/logout":     {Body: gin.H{"ok": true}},
			"/auth/session":    {Body: gin.H{"wallet": "0xaaa", "chain": "evm"}},
			"/api/doc/list":    {Body: []gin.H{}},
		},
		handlers: map[string]gin.HandlerFunc{},
	}
	b.Server = httptest.NewServer(b.router())
	t.Cleanup(b.Server.Close)
	return b
}

// URL is the base url of the fake
func (b *Backend) URL() string {
	return b.Server.URL
}

// Reply replaces the canned response for path
func (b *Backend) Reply(path string, reply Reply) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replies[path] = reply
}

// Handle overrides path with a custom handler
func (b *Backend) Handle(path string, h gin.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[path] = h
}

// Requests returns the recorded requests
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// Count returns how many requests hit path
func (b *Backend) Count(path string) int {
	n := 0
	for _, r := range b.Requests() {
		if r.Path == path {
			n++
		}
	}
	return n
}

func (b *Backend) router() *gin.Engine {
	router := gin.New()

	auth := router.Group("/auth")
	{
		auth.POST("/evm/nonce", b.serve)
		auth.POST("/evm/verify", b.serve)
		auth.POST("/logout", b.serve)
		auth.GET("/session", b.serve)
	}

	api := router.Group("/api")
	{
		api.GET("/doc/list", b.serve)
	}

	return router
}

func (b *Backend) serve(c *gin.Context) {
	path := c.Request.URL.Path
	rec := Request{
		Method:    c.Request.Method,
		Path:      path,
		SessionID: c.GetHeader(core.SessionHeader),
	}
	if path == "/auth/evm/verify" {
		var req core.VerifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		rec.Verify = &req
	}

	b.mu.Lock()
	b.requests = append(b.requests, rec)
	reply := b.replies[path]
	h := b.handlers[path]
	b.mu.Unlock()

	if h != nil {
		h(c)
		return
	}

	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	switch {
	case reply.Raw != "":
		c.Data(status, "application/json", []byte(reply.Raw))
	case reply.Body != nil:
		c.JSON(status, reply.Body)
	default:
		c.Status(status)
	}
}
