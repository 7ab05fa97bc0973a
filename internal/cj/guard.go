package cj

import (
	"context"
	"sync"
	"time"

	"github.com/tanguy-kabore/cjdropshipping-api/internal/metrics"
	"github.com/tanguy-kabore/cjdropshipping-api/internal/tokenstore"
)

// Guard is the single mandatory gate in front of every outbound CJ call.
// Token returns an access token that is valid at the moment of the check,
// orchestrating store-read, expiry-check, and refresh-or-reauthenticate.
// A mutex collapses concurrent expired-token detections into one vendor
// round-trip. Thread-safe.
type Guard struct {
	store  loader
	source TokenSource

	mu      sync.Mutex
	nowFunc func() time.Time // for testing
}

// loader is the read side of tokenstore.Store plus nothing else; the Guard
// never writes the store directly (the Authenticator persists on success).
type loader interface {
	Load(ctx context.Context) (*tokenstore.Record, error)
}

// GuardOption configures the Guard.
type GuardOption func(*Guard)

// WithGuardNowFunc overrides the time function for testing.
func WithGuardNowFunc(f func() time.Time) GuardOption {
	return func(g *Guard) {
		g.nowFunc = f
	}
}

// NewGuard creates a Guard reading records from store and minting new ones
// through source.
func NewGuard(store loader, source TokenSource, opts ...GuardOption) *Guard {
	g := &Guard{
		store:   store,
		source:  source,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Token returns a currently-valid access token.
//
// Absent record: authenticate with the account credentials. Expired record
// (now >= expiry, strict; a missing expiry counts as expired): refresh, and
// on any refresh failure fall back to a full authenticate. Fresh record:
// return the stored token with zero network calls.
//
// Validity is guaranteed only at the moment of the check; a vendor-side
// revocation between check and use surfaces as a business error on the call
// itself and heals on the next Token invocation.
func (g *Guard) Token(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	rec, err := g.store.Load(ctx)
	if err != nil || rec == nil {
		return g.authenticate(ctx)
	}

	if !rec.Expired(g.nowFunc()) {
		return rec.AccessToken, nil
	}

	fresh, err := g.source.Refresh(ctx, rec.RefreshToken)
	if err != nil {
		return g.authenticate(ctx)
	}

	return fresh.AccessToken, nil
}

func (g *Guard) authenticate(ctx context.Context) (string, error) {
	rec, err := g.source.Authenticate(ctx)
	if err != nil {
		metrics.TokenFailuresTotal.Inc()
		return "", err
	}
	return rec.AccessToken, nil
}
