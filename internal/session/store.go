// Package session manages server-side session records referenced by an
// opaque cookie token. Records live for a fixed window from login; there is
// no sliding renewal.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/scalexlabs/marketing-dashboard/internal/database"
)

// CookieName is the client-held cookie carrying the opaque token.
const CookieName = "session_id"

// DefaultTTL is the absolute session lifetime from issuance.
const DefaultTTL = 5 * time.Minute

// ErrNotFound is returned when no live record exists for a token.
var ErrNotFound = errors.New("session not found")

// Record is the server-held session payload. DBConfig is always the
// tenant-specific bundle resolved at login, never the shared auth bundle.
type Record struct {
	User       string               `json:"user"`
	DBConfig   database.Credentials `json:"db_config"`
	LastActive time.Time            `json:"last_active"`
}

// Store reads, writes and clears session records keyed by opaque token.
type Store interface {
	// Get returns the record for token, or ErrNotFound.
	Get(ctx context.Context, token string) (*Record, error)
	// Set writes a fresh record under token with the store's TTL.
	Set(ctx context.Context, token string, rec Record) error
	// Clear removes the record. Idempotent.
	Clear(ctx context.Context, token string) error
}

// NewToken issues an opaque session token.
func NewToken() string {
	return uuid.NewString()
}
