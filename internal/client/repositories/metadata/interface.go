// Package metadata is a small key/value store in the local database. The
// CLI keeps the persisted session and the catalog snapshot time here.
package metadata

import (
	"context"
	"time"
)

// Well-known keys.
const (
	KeySessionUserID    = "session_user_id"
	KeySessionEmail     = "session_email"
	KeySessionStartedAt = "session_started_at"
	KeyCatalogSyncedAt  = "catalog_synced_at"
)

// SessionKeys are dropped together at logout.
var SessionKeys = []string{KeySessionUserID, KeySessionEmail, KeySessionStartedAt}

// Repository stores text values by key. Missing keys are not an error: Get
// reports ok=false and GetTime returns the zero time.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	GetTime(ctx context.Context, key string) (time.Time, error)
	SetTime(ctx context.Context, key string, t time.Time) error
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) (int64, error)
}
