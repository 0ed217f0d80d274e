package database

import (
	"context"
	"fmt"
	"sort"
)

// WorkspaceSummary is the per-user view of a workspace membership.
type WorkspaceSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// workspaceRecord is the subset of a workspace document needed to resolve
// memberships.
type workspaceRecord struct {
	Name    string            `json:"name"`
	Owner   string            `json:"owner"`
	Members map[string]string `json:"members"`
}

// Invite is an entry in the global per-email invite index.
type Invite struct {
	WorkspaceID   string      `json:"workspaceId"`
	WorkspaceName string      `json:"workspaceName"`
	InvitedBy     string      `json:"invitedBy"`
	Status        string      `json:"status"`
	Timestamp     interface{} `json:"timestamp"`
}

// GetWorkspace returns the raw workspace document. A missing workspace
// yields a nil map, not an error; the store makes no distinction.
func (s *service) GetWorkspace(ctx context.Context, workspaceID string) (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := s.db.NewRef("workspaces/"+workspaceID).Get(ctx, &data); err != nil {
		return nil, fmt.Errorf("failed to get workspace %s: %w", workspaceID, err)
	}
	return data, nil
}

// CreateWorkspace appends a new workspace document and returns its push key.
func (s *service) CreateWorkspace(ctx context.Context, name, ownerUID string) (string, error) {
	ref, err := s.db.NewRef("workspaces").Push(ctx, map[string]interface{}{
		"name":      name,
		"owner":     ownerUID,
		"members":   map[string]string{ownerUID: "owner"},
		"createdAt": serverTimestamp,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create workspace: %w", err)
	}
	return ref.Key, nil
}

// GetUserWorkspaces lists every workspace uid is a member of. The store has
// no membership index, so this scans all workspaces.
func (s *service) GetUserWorkspaces(ctx context.Context, uid string) ([]WorkspaceSummary, error) {
	var all map[string]workspaceRecord
	if err := s.db.NewRef("workspaces").Get(ctx, &all); err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}

	summaries := []WorkspaceSummary{}
	for id, w := range all {
		role, ok := w.Members[uid]
		if !ok {
			continue
		}
		name := w.Name
		if name == "" {
			name = "Unnamed"
		}
		summaries = append(summaries, WorkspaceSummary{ID: id, Name: name, Role: role})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, nil
}

// CreateInvite records an invite in two locations: under the workspace and
// under the global per-email index the invitee polls. The two writes are
// independent network calls with no transaction; a failure between them
// leaves a workspace invite that never reaches the invitee's index. That
// partial write is an accepted operational risk of the store, not something
// this code can compensate for.
func (s *service) CreateInvite(ctx context.Context, workspaceID, email, inviterUID string) (string, error) {
	ref, err := s.db.NewRef("workspaces/"+workspaceID+"/invites").Push(ctx, map[string]interface{}{
		"email":     email,
		"status":    "pending",
		"invitedBy": inviterUID,
		"timestamp": serverTimestamp,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create invite: %w", err)
	}

	var workspaceName string
	if err := s.db.NewRef("workspaces/"+workspaceID+"/name").Get(ctx, &workspaceName); err != nil || workspaceName == "" {
		workspaceName = "Unnamed Workspace"
	}

	err = s.db.NewRef("invites/"+EmailKey(email)).Child(ref.Key).Set(ctx, map[string]interface{}{
		"workspaceId":   workspaceID,
		"workspaceName": workspaceName,
		"invitedBy":     inviterUID,
		"status":        "pending",
		"timestamp":     serverTimestamp,
	})
	if err != nil {
		return "", fmt.Errorf("failed to index invite for %s: %w", email, err)
	}
	return ref.Key, nil
}

// GetInvitesForEmail returns the global invite index entries for an email.
func (s *service) GetInvitesForEmail(ctx context.Context, email string) (map[string]Invite, error) {
	var invites map[string]Invite
	if err := s.db.NewRef("invites/" + EmailKey(email)).Get(ctx, &invites); err != nil {
		return nil, fmt.Errorf("failed to get invites for %s: %w", email, err)
	}
	return invites, nil
}

// RespondToInvite applies an accept or reject decision. Accepting adds the
// user to the workspace members map with the "member" role; both copies of
// the invite record get the new status. As with CreateInvite, the writes are
// not atomic.
func (s *service) RespondToInvite(ctx context.Context, workspaceID, inviteID, email, uid string, accept bool) error {
	status := "rejected"
	if accept {
		status = "accepted"
		err := s.db.NewRef("workspaces/"+workspaceID+"/members").Update(ctx, map[string]interface{}{
			uid: "member",
		})
		if err != nil {
			return fmt.Errorf("failed to add member to workspace %s: %w", workspaceID, err)
		}
	}

	err := s.db.NewRef("workspaces/"+workspaceID+"/invites/"+inviteID).Update(ctx, map[string]interface{}{
		"status": status,
	})
	if err != nil {
		return fmt.Errorf("failed to update workspace invite %s: %w", inviteID, err)
	}

	err = s.db.NewRef("invites/"+EmailKey(email)+"/"+inviteID).Update(ctx, map[string]interface{}{
		"status": status,
	})
	if err != nil {
		return fmt.Errorf("failed to update indexed invite %s: %w", inviteID, err)
	}
	return nil
}
