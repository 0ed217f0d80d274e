package database

import (
	"context"
	"fmt"
)

// Snapshot is a saved version of a workspace's document content.
type Snapshot struct {
	Content   interface{} `json:"content"`
	UserID    string      `json:"userId"`
	Timestamp interface{} `json:"timestamp"`
}

// GetHistory lists all snapshots saved for a workspace, keyed by snapshot id.
func (s *service) GetHistory(ctx context.Context, workspaceID string) (map[string]Snapshot, error) {
	var snapshots map[string]Snapshot
	if err := s.db.NewRef("history/" + workspaceID).Get(ctx, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to get history for %s: %w", workspaceID, err)
	}
	return snapshots, nil
}

// SaveSnapshot appends a snapshot of content under the workspace's history
// node and returns its push key.
func (s *service) SaveSnapshot(ctx context.Context, workspaceID string, content interface{}, userID string) (string, error) {
	ref, err := s.db.NewRef("history/"+workspaceID).Push(ctx, map[string]interface{}{
		"content":   content,
		"userId":    userID,
		"timestamp": serverTimestamp,
	})
	if err != nil {
		return "", fmt.Errorf("failed to save snapshot: %w", err)
	}
	return ref.Key, nil
}

// RestoreSnapshot copies a snapshot's content back onto the workspace
// document.
func (s *service) RestoreSnapshot(ctx context.Context, workspaceID, snapshotID string) error {
	var snapshot Snapshot
	if err := s.db.NewRef("history/"+workspaceID+"/"+snapshotID).Get(ctx, &snapshot); err != nil {
		return fmt.Errorf("failed to get snapshot %s: %w", snapshotID, err)
	}
	if snapshot.Content == nil {
		return fmt.Errorf("snapshot %s not found", snapshotID)
	}
	if err := s.db.NewRef("workspaces/"+workspaceID+"/content").Set(ctx, snapshot.Content); err != nil {
		return fmt.Errorf("failed to restore snapshot %s: %w", snapshotID, err)
	}
	return nil
}
