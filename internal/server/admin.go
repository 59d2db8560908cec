package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/elefant-coder/hearing-chatbot/internal/hearing"
)

const adminPasswordHeader = "x-admin-password"

// sessionSummary is a stored session decorated with the derived admin-list
// fields. The raw record is returned verbatim alongside them.
type sessionSummary struct {
	ID          string            `json:"id"`
	Messages    []hearing.Message `json:"messages"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DisplayName string            `json:"display_name"`
	AnswerCount int               `json:"answer_count"`
}

type sessionsResponse struct {
	Sessions []sessionSummary `json:"sessions"`
}

// handleAdminSessions returns every stored transcript, newest first. The
// secret comparison runs before the store is touched, so a wrong password
// leaks nothing about whether persistence is even configured.
func (s *Server) handleAdminSessions(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// An unset secret means the admin surface is disabled entirely
	password := r.Header.Get(adminPasswordHeader)
	if s.options.AdminPassword == "" || password != s.options.AdminPassword {
		logger.Warn().Str("ip", clientIP(r)).Msg("Admin listing rejected")
		writeError(w, http.StatusUnauthorized, msgUnauthorized, codeUnauthorized)
		return
	}

	if s.store == nil {
		writeError(w, http.StatusInternalServerError, msgDBNotConfigured, codeNotConfigured)
		return
	}

	sessions, err := s.store.List(r.Context())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list sessions")
		writeError(w, http.StatusInternalServerError, msgSessionListFailed, codePersistenceError)
		return
	}

	summaries := make([]sessionSummary, 0, len(sessions))
	for _, session := range sessions {
		name, count := hearing.Extract(session.Messages)
		summaries = append(summaries, sessionSummary{
			ID:          session.ID,
			Messages:    session.Messages,
			CreatedAt:   session.CreatedAt,
			UpdatedAt:   session.UpdatedAt,
			DisplayName: name,
			AnswerCount: count,
		})
	}

	writeJSON(w, http.StatusOK, sessionsResponse{Sessions: summaries})
}
