// Package directory holds the client's snapshot of the user directory.
//
// The snapshot is whatever the last successful ListUsers returned. It is a
// display and pre-check cache only: lookups made against it can be stale,
// and the server stays authoritative for ids and uniqueness.
package directory

import (
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/catalog/internal/client/models"
	"github.com/patrickmn/go-cache"
)

type Directory struct {
	mu       sync.RWMutex
	users    []models.User
	byEmail  *cache.Cache
	loadedAt time.Time
	now      func() time.Time
}

func New() *Directory {
	return &Directory{
		byEmail: cache.New(cache.NoExpiration, 0),
		now:     time.Now,
	}
}

func emailKey(email string) string {
	return strings.ToLower(email)
}

// Load replaces the snapshot with users. When two users share an email
// (ignoring case) the first one in users wins lookups.
func (d *Directory) Load(users []models.User) {
	index := cache.New(cache.NoExpiration, 0)
	for _, u := range users {
		// Add fails on an existing key, which keeps the first match.
		_ = index.Add(emailKey(u.Email), u, cache.NoExpiration)
	}
	snapshot := append([]models.User(nil), users...)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.users = snapshot
	d.byEmail = index
	d.loadedAt = d.now()
}

// FindByEmail matches email case-insensitively.
func (d *Directory) FindByEmail(email string) (models.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	v, ok := d.byEmail.Get(emailKey(email))
	if !ok {
		return models.User{}, false
	}
	return v.(models.User), true
}

func (d *Directory) IsRegistered(email string) bool {
	_, ok := d.FindByEmail(email)
	return ok
}

// VerifyCredentials compares the stored plaintext password with password.
//
// This is NOT authentication: the directory carries every user's password
// as served by the API, and the check happens on the client.
func (d *Directory) VerifyCredentials(email, password string) bool {
	u, ok := d.FindByEmail(email)
	return ok && u.Password == password
}

// NextID predicts the id the server will assign next: max(id)+1, or 1 when
// the snapshot is empty.
func (d *Directory) NextID() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	next := 1
	for _, u := range d.users {
		if u.ID >= next {
			next = u.ID + 1
		}
	}
	return next
}

func (d *Directory) Users() []models.User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]models.User(nil), d.users...)
}

func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.users)
}

// LoadedAt is the time of the last Load, zero if never loaded.
func (d *Directory) LoadedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loadedAt
}
