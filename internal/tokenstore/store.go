// Package tokenstore defines durable single-record storage for the CJ
// access/refresh token pair. All token lifecycle logic depends on the Store
// interface, never on concrete implementations. This enables mock-based
// testing without touching disk or a database.
package tokenstore

import (
	"context"
	"time"
)

// Record is the persisted token triple. Values are immutable once loaded;
// a refresh or re-authentication writes a full replacement, never a partial
// update.
type Record struct {
	AccessToken  string    `json:"accessToken"`
	Expiry       time.Time `json:"accessTokenExpiryDate"`
	RefreshToken string    `json:"refreshToken"`
}

// Expired reports whether the record's access token is unusable at the given
// instant. A token expiring exactly now counts as expired, and a record with
// no expiry at all is treated as expired so the caller always refreshes
// rather than risk a stale token.
func (r *Record) Expired(now time.Time) bool {
	if r.Expiry.IsZero() {
		return true
	}
	return !now.UTC().Before(r.Expiry)
}

// Store is durable storage for at most one Record.
type Store interface {
	// Load returns the persisted record, or (nil, nil) when none exists or
	// the stored data is unreadable. A missing or corrupt record is never an
	// error; the caller self-heals by re-authenticating.
	Load(ctx context.Context) (*Record, error)

	// Save durably overwrites the single record. Concurrent Loads observe
	// either the previous or the new record, never a torn write.
	Save(ctx context.Context, r *Record) error
}
