// Package database accesses the hosted Firebase Realtime Database that holds
// workspaces, members, invites, and document history. The store is external:
// this code never owns the data, it reads and writes documents through the
// store's own client and inherits whatever consistency the store provides
// (last-write-wins, no multi-path transactions on these flows).
package database

import (
	"context"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
)

// Service is the store surface the route handlers depend on.
type Service interface {
	GetWorkspace(ctx context.Context, workspaceID string) (map[string]interface{}, error)
	CreateWorkspace(ctx context.Context, name, ownerUID string) (string, error)
	GetUserWorkspaces(ctx context.Context, uid string) ([]WorkspaceSummary, error)

	CreateInvite(ctx context.Context, workspaceID, email, inviterUID string) (string, error)
	GetInvitesForEmail(ctx context.Context, email string) (map[string]Invite, error)
	RespondToInvite(ctx context.Context, workspaceID, inviteID, email, uid string, accept bool) error

	GetHistory(ctx context.Context, workspaceID string) (map[string]Snapshot, error)
	SaveSnapshot(ctx context.Context, workspaceID string, content interface{}, userID string) (string, error)
	RestoreSnapshot(ctx context.Context, workspaceID, snapshotID string) error
}

// serverTimestamp is the Realtime Database server-value sentinel. The store
// replaces it with the server's epoch-millis at write time. It is part of the
// external system's wire contract, not something this code models.
var serverTimestamp = map[string]string{".sv": "timestamp"}

// EmailKey sanitizes an email address for use as a store path segment.
// Realtime Database keys cannot contain '.', so the store contract replaces
// it with ','.
func EmailKey(email string) string {
	return strings.ReplaceAll(email, ".", ",")
}

type service struct {
	db *db.Client
}

// New builds the store service on the app's Realtime Database client.
func New(ctx context.Context, app *firebase.App) (Service, error) {
	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database client: %w", err)
	}
	return &service{db: client}, nil
}
