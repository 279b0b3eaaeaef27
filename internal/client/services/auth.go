// Package services contains application services for the catalog client.
// This file defines the session service: starting, persisting, resuming and
// ending the logged-in session, plus the server liveness probe.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/catalog/internal/client/client"
	"github.com/dmitrijs2005/catalog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/catalog/internal/client/repositories/products"
	"github.com/dmitrijs2005/catalog/internal/client/session"
	"github.com/dmitrijs2005/catalog/internal/dbx"
)

// AuthService manages the session lifecycle for the CLI.
//
// Contract:
//   - Start: create a session for a user the screens already verified and
//     persist it locally.
//   - Resume: restore the persisted session, or session.ErrNoSession.
//   - Logout: forget the persisted session.
//   - Purge: forget the session and every other local state, the offline
//     catalog included.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
type AuthService interface {
	Start(ctx context.Context, userID int, email string) (*session.Session, error)
	Resume(ctx context.Context) (*session.Session, error)
	Logout(ctx context.Context) error
	Purge(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// authService is backed by a remote Client and the local metadata table.
type authService struct {
	client client.Client
	db     *sql.DB
	now    func() time.Time
}

func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db, now: time.Now}
}

func (a *authService) Start(ctx context.Context, userID int, email string) (*session.Session, error) {
	s := session.New(userID, email, a.now().UTC())
	if err := session.Require(s); err != nil {
		return nil, err
	}

	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, metadata.KeySessionUserID, strconv.Itoa(s.UserID)); err != nil {
			return err
		}
		if err := repo.Set(ctx, metadata.KeySessionEmail, s.Email); err != nil {
			return err
		}
		return repo.SetTime(ctx, metadata.KeySessionStartedAt, s.StartedAt)
	})
	if err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return s, nil
}

func (a *authService) Resume(ctx context.Context) (*session.Session, error) {
	repo := metadata.NewSQLiteRepository(a.db)

	rawID, ok, err := repo.Get(ctx, metadata.KeySessionUserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, session.ErrNoSession
	}
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return nil, fmt.Errorf("corrupt stored session: %w", err)
	}

	email, _, err := repo.Get(ctx, metadata.KeySessionEmail)
	if err != nil {
		return nil, err
	}

	// A bad start time does not invalidate the session.
	started, err := repo.GetTime(ctx, metadata.KeySessionStartedAt)
	if err != nil {
		started = time.Time{}
	}

	s := session.New(id, email, started)
	if err := session.Require(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return metadata.NewSQLiteRepository(a.db).Delete(ctx, metadata.SessionKeys...)
}

// Purge wipes the metadata table and the offline catalog in one transaction.
func (a *authService) Purge(ctx context.Context) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := metadata.NewSQLiteRepository(tx).Clear(ctx); err != nil {
			return err
		}
		return products.NewSQLiteRepository(tx).ReplaceAll(ctx, nil)
	})
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
