package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/elefant-coder/hearing-chatbot/internal/hearing"
)

// fakeProvider counts completion calls and returns a canned reply.
type fakeProvider struct {
	calls int
	reply string
	err   error
}

func (f *fakeProvider) Complete(ctx context.Context, systemPrompt string, messages []hearing.Message) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeProvider) Name() string {
	return "fake"
}

// fakeStore records upserts in memory and can be told to fail. touched
// reports whether any method reached the store at all.
type fakeStore struct {
	sessions  map[string]hearing.Session
	listOrder []string
	upsertErr error
	listErr   error
	touched   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[string]hearing.Session)}
}

func (f *fakeStore) Upsert(ctx context.Context, session hearing.Session) error {
	f.touched = true
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if _, exists := f.sessions[session.ID]; !exists {
		f.listOrder = append(f.listOrder, session.ID)
	}
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeStore) Get(ctx context.Context, id string) (hearing.Session, bool, error) {
	f.touched = true
	session, ok := f.sessions[id]
	return session, ok, nil
}

func (f *fakeStore) List(ctx context.Context) ([]hearing.Session, error) {
	f.touched = true
	if f.listErr != nil {
		return nil, f.listErr
	}

	// Most recently created first, close enough to updated_at ordering
	// for these tests
	sessions := make([]hearing.Session, 0, len(f.listOrder))
	for i := len(f.listOrder) - 1; i >= 0; i-- {
		sessions = append(sessions, f.sessions[f.listOrder[i]])
	}
	return sessions, nil
}

func (f *fakeStore) Count(ctx context.Context) (int, error) {
	f.touched = true
	return len(f.sessions), nil
}

func (f *fakeStore) Close() error {
	return nil
}

type serverParts struct {
	server   *Server
	provider *fakeProvider
	store    *fakeStore
}

func newTestServer(t *testing.T, mutate func(*serverParts)) (*serverParts, http.Handler) {
	t.Helper()

	parts := &serverParts{
		provider: &fakeProvider{reply: "田中さん、はじめまして！お仕事について教えてください。"},
		store:    newFakeStore(),
	}
	if mutate != nil {
		mutate(parts)
	}

	// Typed nils must not become non-nil interface values
	srv := New(Options{AdminPassword: "correct-password"}, nil, nil, nil, zerolog.Nop())
	if parts.provider != nil {
		srv.relay = parts.provider
	}
	if parts.store != nil {
		srv.store = parts.store
	}
	parts.server = srv

	return parts, srv.Handler()
}

func doRequest(handler http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func TestHealth(t *testing.T) {
	_, handler := newTestServer(t, nil)

	res := doRequest(handler, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestRejectsRequestsDuringShutdown(t *testing.T) {
	parts, handler := newTestServer(t, nil)

	parts.server.shutdownMu.Lock()
	parts.server.isShuttingDown = true
	parts.server.shutdownMu.Unlock()

	res := doRequest(handler, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, res.Code)
}
