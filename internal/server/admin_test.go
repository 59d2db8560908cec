package server

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elefant-coder/hearing-chatbot/internal/hearing"
)

func seedSessions(t *testing.T, st *fakeStore) {
	t.Helper()

	require.NoError(t, st.Upsert(context.Background(), hearing.Session{
		ID: "S1",
		Messages: []hearing.Message{
			{Role: hearing.RoleUser, Content: "佐藤です"},
			{Role: hearing.RoleAssistant, Content: "ありがとうございます"},
			{Role: hearing.RoleUser, Content: "よろしくお願いします、データ分析をしています"},
		},
	}))
	require.NoError(t, st.Upsert(context.Background(), hearing.Session{
		ID: "S2",
		Messages: []hearing.Message{
			{Role: hearing.RoleAssistant, Content: "こんにちは！お名前を教えてください。"},
		},
	}))
	st.touched = false
}

func TestAdminListingWrongPassword(t *testing.T) {
	parts, handler := newTestServer(t, nil)
	seedSessions(t, parts.store)

	res := doRequest(handler, http.MethodGet, "/api/admin/sessions", "", map[string]string{
		"x-admin-password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, res.Code)

	// No session data, no sessions key, and the store was never reached
	var raw map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &raw))
	_, hasSessions := raw["sessions"]
	assert.False(t, hasSessions)
	assert.False(t, parts.store.touched)
}

func TestAdminListingMissingHeader(t *testing.T) {
	parts, handler := newTestServer(t, nil)
	seedSessions(t, parts.store)

	res := doRequest(handler, http.MethodGet, "/api/admin/sessions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.False(t, parts.store.touched)
}

func TestAdminListingEmptyConfiguredSecret(t *testing.T) {
	parts, handler := newTestServer(t, nil)
	parts.server.options.AdminPassword = ""
	seedSessions(t, parts.store)

	// An unset secret never authorizes, not even an empty header value
	res := doRequest(handler, http.MethodGet, "/api/admin/sessions", "", map[string]string{
		"x-admin-password": "",
	})
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.False(t, parts.store.touched)
}

func TestAdminListingStoreNotConfigured(t *testing.T) {
	_, handler := newTestServer(t, func(p *serverParts) {
		p.store = nil
	})

	res := doRequest(handler, http.MethodGet, "/api/admin/sessions", "", map[string]string{
		"x-admin-password": "correct-password",
	})
	require.Equal(t, http.StatusInternalServerError, res.Code)

	var response errorResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &response))
	assert.Equal(t, codeNotConfigured, response.Code)
}

func TestAdminListingStoreFailure(t *testing.T) {
	_, handler := newTestServer(t, func(p *serverParts) {
		p.store.listErr = hearing.ErrPersistence
	})

	res := doRequest(handler, http.MethodGet, "/api/admin/sessions", "", map[string]string{
		"x-admin-password": "correct-password",
	})
	require.Equal(t, http.StatusInternalServerError, res.Code)

	var response errorResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &response))
	assert.Equal(t, codePersistenceError, response.Code)
	assert.Equal(t, msgSessionListFailed, response.Error)
}

func TestAdminListingReturnsDecoratedSessions(t *testing.T) {
	parts, handler := newTestServer(t, nil)
	seedSessions(t, parts.store)

	res := doRequest(handler, http.MethodGet, "/api/admin/sessions", "", map[string]string{
		"x-admin-password": "correct-password",
	})
	require.Equal(t, http.StatusOK, res.Code)

	var response sessionsResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &response))
	require.Len(t, response.Sessions, 2)

	// Most recent first
	assert.Equal(t, "S2", response.Sessions[0].ID)
	assert.Equal(t, "S1", response.Sessions[1].ID)

	// Derived fields follow the extraction heuristic; raw messages are
	// returned verbatim alongside them
	assert.Equal(t, hearing.NamePlaceholder, response.Sessions[0].DisplayName)
	assert.Equal(t, 0, response.Sessions[0].AnswerCount)
	assert.Equal(t, "佐藤です", response.Sessions[1].DisplayName)
	assert.Equal(t, 2, response.Sessions[1].AnswerCount)
	assert.Len(t, response.Sessions[1].Messages, 3)
}

func TestAdminListingMethodNotAllowed(t *testing.T) {
	_, handler := newTestServer(t, nil)

	res := doRequest(handler, http.MethodPost, "/api/admin/sessions", "", map[string]string{
		"x-admin-password": "correct-password",
	})
	assert.Equal(t, http.StatusMethodNotAllowed, res.Code)
}
