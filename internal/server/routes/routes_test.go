package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"studioflow/internal/auth"
	"studioflow/internal/database"
)

// fakeWorkspace mirrors the store's workspace document shape.
type fakeWorkspace struct {
	Name    string
	Owner   string
	Members map[string]string
	Invites map[string]map[string]interface{}
	Content interface{}
}

// fakeStore is an in-memory database.Service with the same dual-write invite
// semantics as the real store.
type fakeStore struct {
	Workspaces map[string]*fakeWorkspace
	// InviteIndex is keyed by sanitized email, then invite id.
	InviteIndex map[string]map[string]map[string]interface{}
	History     map[string]map[string]database.Snapshot

	failNext error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		Workspaces:  map[string]*fakeWorkspace{},
		InviteIndex: map[string]map[string]map[string]interface{}{},
		History:     map[string]map[string]database.Snapshot{},
	}
}

func (f *fakeStore) takeErr() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeStore) GetWorkspace(ctx context.Context, workspaceID string) (map[string]interface{}, error) {
	if err := f.takeErr(); err != nil {
		return nil, err
	}
	w, ok := f.Workspaces[workspaceID]
	if !ok {
		return nil, nil
	}
	data := map[string]interface{}{
		"name":    w.Name,
		"owner":   w.Owner,
		"members": w.Members,
	}
	if w.Content != nil {
		data["content"] = w.Content
	}
	return data, nil
}

func (f *fakeStore) CreateWorkspace(ctx context.Context, name, ownerUID string) (string, error) {
	if err := f.takeErr(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	f.Workspaces[id] = &fakeWorkspace{
		Name:    name,
		Owner:   ownerUID,
		Members: map[string]string{ownerUID: "owner"},
		Invites: map[string]map[string]interface{}{},
	}
	return id, nil
}

func (f *fakeStore) GetUserWorkspaces(ctx context.Context, uid string) ([]database.WorkspaceSummary, error) {
	if err := f.takeErr(); err != nil {
		return nil, err
	}
	summaries := []database.WorkspaceSummary{}
	for id, w := range f.Workspaces {
		if role, ok := w.Members[uid]; ok {
			summaries = append(summaries, database.WorkspaceSummary{ID: id, Name: w.Name, Role: role})
		}
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, nil
}

func (f *fakeStore) CreateInvite(ctx context.Context, workspaceID, email, inviterUID string) (string, error) {
	if err := f.takeErr(); err != nil {
		return "", err
	}
	w, ok := f.Workspaces[workspaceID]
	if !ok {
		return "", errors.New("workspace not found")
	}
	id := uuid.NewString()
	w.Invites[id] = map[string]interface{}{
		"email":     email,
		"status":    "pending",
		"invitedBy": inviterUID,
	}

	key := database.EmailKey(email)
	if f.InviteIndex[key] == nil {
		f.InviteIndex[key] = map[string]map[string]interface{}{}
	}
	f.InviteIndex[key][id] = map[string]interface{}{
		"workspaceId":   workspaceID,
		"workspaceName": w.Name,
		"invitedBy":     inviterUID,
		"status":        "pending",
	}
	return id, nil
}

func (f *fakeStore) GetInvitesForEmail(ctx context.Context, email string) (map[string]database.Invite, error) {
	if err := f.takeErr(); err != nil {
		return nil, err
	}
	indexed := f.InviteIndex[database.EmailKey(email)]
	if len(indexed) == 0 {
		return nil, nil
	}
	invites := map[string]database.Invite{}
	for id, record := range indexed {
		invites[id] = database.Invite{
			WorkspaceID:   record["workspaceId"].(string),
			WorkspaceName: record["workspaceName"].(string),
			InvitedBy:     record["invitedBy"].(string),
			Status:        record["status"].(string),
		}
	}
	return invites, nil
}

func (f *fakeStore) RespondToInvite(ctx context.Context, workspaceID, inviteID, email, uid string, accept bool) error {
	if err := f.takeErr(); err != nil {
		return err
	}
	status := "rejected"
	if accept {
		status = "accepted"
		if w, ok := f.Workspaces[workspaceID]; ok {
			w.Members[uid] = "member"
		}
	}
	if w, ok := f.Workspaces[workspaceID]; ok {
		if invite, ok := w.Invites[inviteID]; ok {
			invite["status"] = status
		}
	}
	if indexed, ok := f.InviteIndex[database.EmailKey(email)]; ok {
		if invite, ok := indexed[inviteID]; ok {
			invite["status"] = status
		}
	}
	return nil
}

func (f *fakeStore) GetHistory(ctx context.Context, workspaceID string) (map[string]database.Snapshot, error) {
	if err := f.takeErr(); err != nil {
		return nil, err
	}
	return f.History[workspaceID], nil
}

func (f *fakeStore) SaveSnapshot(ctx context.Context, workspaceID string, content interface{}, userID string) (string, error) {
	if err := f.takeErr(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	if f.History[workspaceID] == nil {
		f.History[workspaceID] = map[string]database.Snapshot{}
	}
	f.History[workspaceID][id] = database.Snapshot{Content: content, UserID: userID}
	return id, nil
}

func (f *fakeStore) RestoreSnapshot(ctx context.Context, workspaceID, snapshotID string) error {
	if err := f.takeErr(); err != nil {
		return err
	}
	snapshot, ok := f.History[workspaceID][snapshotID]
	if !ok {
		return fmt.Errorf("snapshot %s not found", snapshotID)
	}
	w, ok := f.Workspaces[workspaceID]
	if !ok {
		return errors.New("workspace not found")
	}
	w.Content = snapshot.Content
	return nil
}

// stubIdentity verifies only the tokens it was seeded with.
type stubIdentity struct {
	tokens map[string]*auth.Claims
}

func (s *stubIdentity) VerifyIDToken(ctx context.Context, idToken string) (*auth.Claims, error) {
	if claims, ok := s.tokens[idToken]; ok {
		return claims, nil
	}
	return nil, auth.ErrInvalidToken
}

// stubDirectory holds profiles in memory and applies allow-listed updates.
type stubDirectory struct {
	users map[string]*auth.User
}

func (s *stubDirectory) GetUser(ctx context.Context, uid string) (*auth.User, error) {
	if user, ok := s.users[uid]; ok {
		return user, nil
	}
	return nil, errors.New("user not found")
}

func (s *stubDirectory) UpdateUser(ctx context.Context, uid string, update auth.UserUpdate) (*auth.User, error) {
	user, ok := s.users[uid]
	if !ok {
		return nil, errors.New("user not found")
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.DisplayName != nil {
		user.DisplayName = *update.DisplayName
	}
	if update.PhotoURL != nil {
		user.PhotoURL = *update.PhotoURL
	}
	return user, nil
}

type testServer struct {
	db   database.Service
	auth *auth.Service
}

func (t *testServer) GetDB() database.Service { return t.db }
func (t *testServer) GetAuth() *auth.Service  { return t.auth }

const (
	aliceToken = "alice-id-token"
	bobToken   = "bob-id-token"
	aliceUID   = "alice-uid"
	bobUID     = "bob-uid"
	aliceEmail = "alice@example.com"
	bobEmail   = "bob@example.com"
)

func newTestServer() (*testServer, *fakeStore) {
	store := newFakeStore()
	identity := &stubIdentity{tokens: map[string]*auth.Claims{
		aliceToken: {UID: aliceUID, Email: aliceEmail},
		bobToken:   {UID: bobUID, Email: bobEmail},
	}}
	directory := &stubDirectory{users: map[string]*auth.User{
		aliceUID: {UID: aliceUID, Email: aliceEmail, DisplayName: "Alice", EmailVerified: true},
		bobUID:   {UID: bobUID, Email: bobEmail, DisplayName: "Bob"},
	}}
	return &testServer{
		db:   store,
		auth: auth.NewService("test-secret", identity, directory),
	}, store
}

// newAuthWithoutProfiles verifies the same identity tokens but has an empty
// user directory.
func newAuthWithoutProfiles() *auth.Service {
	identity := &stubIdentity{tokens: map[string]*auth.Claims{
		aliceToken: {UID: aliceUID, Email: aliceEmail},
	}}
	return auth.NewService("test-secret", identity, &stubDirectory{users: map[string]*auth.User{}})
}

func newEngine(ts *testServer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	NewAuthRoutes(ts).RegisterRoutes(r)
	NewUserRoutes(ts).RegisterRoutes(r)
	NewCSVRoutes(ts).RegisterRoutes(r)
	NewExportRoutes(ts).RegisterRoutes(r)
	NewWorkspaceRoutes(ts).RegisterRoutes(r)
	NewTeamRoutes(ts).RegisterRoutes(r)
	NewHistoryRoutes(ts).RegisterRoutes(r)
	NewGraphRoutes(ts).RegisterRoutes(r)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})
	return r
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doUpload performs a multipart upload of content as the "file" field.
func doUpload(t *testing.T, r *gin.Engine, path, filename, content, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
