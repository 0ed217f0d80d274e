package routes

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWorkspace(t *testing.T) {
	ts, store := newTestServer()
	r := newEngine(ts)

	w := doJSON(t, r, http.MethodPost, "/api/workspaces/create", map[string]string{"name": "Notes"}, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Notes", body["name"])

	id := body["workspaceId"].(string)
	require.Contains(t, store.Workspaces, id)
	assert.Equal(t, "owner", store.Workspaces[id].Members[aliceUID])
}

func TestCreateWorkspaceDefaultName(t *testing.T) {
	ts, _ := newTestServer()
	r := newEngine(ts)

	w := doJSON(t, r, http.MethodPost, "/api/workspaces/create", map[string]string{}, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "New Workspace", decodeBody(t, w)["name"])
}

func TestListWorkspaces(t *testing.T) {
	ts, _ := newTestServer()
	r := newEngine(ts)

	doJSON(t, r, http.MethodPost, "/api/workspaces/create", map[string]string{"name": "Mine"}, aliceToken)
	doJSON(t, r, http.MethodPost, "/api/workspaces/create", map[string]string{"name": "Theirs"}, bobToken)

	w := doJSON(t, r, http.MethodGet, "/api/workspaces/list", nil, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)

	workspaces := decodeBody(t, w)["workspaces"].([]interface{})
	require.Len(t, workspaces, 1)
	first := workspaces[0].(map[string]interface{})
	assert.Equal(t, "Mine", first["name"])
	assert.Equal(t, "owner", first["role"])
}

func TestGetWorkspace(t *testing.T) {
	ts, _ := newTestServer()
	r := newEngine(ts)

	createResp := doJSON(t, r, http.MethodPost, "/api/workspaces/create", map[string]string{"name": "Docs"}, aliceToken)
	id := decodeBody(t, createResp)["workspaceId"].(string)

	w := doJSON(t, r, http.MethodGet, "/api/workspace/"+id, nil, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, id, body["workspaceId"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Docs", data["name"])
	assert.Equal(t, aliceUID, data["owner"])
}

func TestGetWorkspaceMissing(t *testing.T) {
	ts, _ := newTestServer()
	r := newEngine(ts)

	w := doJSON(t, r, http.MethodGet, "/api/workspace/nope", nil, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodeBody(t, w)["data"])
}
