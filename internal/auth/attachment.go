// Package auth holds per-tenant session state for the Zscaler surfaces.
// Each dialect exchanges its credentials once and derives an Attachment, the
// set of headers and cookies carried by every subsequent request.
package auth

import (
	"context"
	nethttp "net/http"
	"sync"

	transport "github.com/trace333w/zscaler-api-talkers/internal/http"
	"github.com/trace333w/zscaler-api-talkers/pkg/zscaler"
)

// Attachment is the immutable credential material derived from one
// successful authentication. Re-authentication replaces the whole value;
// individual fields are never mutated in place.
type Attachment struct {
	Headers map[string]string
	Cookies []*nethttp.Cookie
}

// Apply decorates an outgoing request with the attachment. It always applies
// the attachment it was read from, so callers observe a consistent snapshot
// even across a concurrent re-authentication.
func (a Attachment) Apply(req *transport.Request) {
	if len(a.Headers) > 0 && req.Headers == nil {
		req.Headers = make(map[string]string, len(a.Headers))
	}

	for key, value := range a.Headers {
		if _, exists := req.Headers[key]; !exists {
			req.Headers[key] = value
		}
	}

	req.Cookies = append(req.Cookies, a.Cookies...)
}

// Session is the authentication contract shared by all dialects.
type Session interface {
	// Authenticate (re-)establishes the session, replacing the attachment
	// wholesale on success.
	Authenticate(ctx context.Context) error
	// Attachment returns the current credential snapshot, or
	// zscaler.ErrNotAuthenticated before the first successful Authenticate.
	Attachment() (Attachment, error)
}

// holder guards the attachment. Writes happen only on (re)authentication;
// the read path is lock-cheap.
type holder struct {
	mu  sync.RWMutex
	att *Attachment
}

func (h *holder) set(att Attachment) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.att = &att
}

func (h *holder) get() (Attachment, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.att == nil {
		return Attachment{}, zscaler.ErrNotAuthenticated
	}

	return *h.att, nil
}
