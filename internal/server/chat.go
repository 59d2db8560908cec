package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/elefant-coder/hearing-chatbot/internal/hearing"
)

type chatRequest struct {
	Messages  []hearing.Message `json:"messages"`
	SessionID string            `json:"sessionId"`
}

type chatResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

// handleChat runs one hearing turn: relay the transcript to the language
// model, then record the grown transcript best-effort. The reply never
// depends on the persistence outcome.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to read request body")
		writeError(w, http.StatusBadRequest, msgInvalidRequest, codeInvalidRequest)
		return
	}

	if err := validateChatRequest(body); err != nil {
		logger.Warn().Err(err).Msg("Rejected chat request")
		writeError(w, http.StatusBadRequest, msgInvalidRequest, codeInvalidRequest)
		return
	}

	var req chatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		logger.Error().Err(err).Msg("Failed to decode chat request")
		writeError(w, http.StatusBadRequest, msgInvalidRequest, codeInvalidRequest)
		return
	}

	// Credential check happens before any relay call
	if s.relay == nil {
		logger.Error().Msg("Chat request received but no language-model credential is configured")
		writeError(w, http.StatusInternalServerError, msgChatFailed, codeNotConfigured)
		return
	}

	reply, err := s.relay.Complete(r.Context(), s.prompts.Current(), req.Messages)
	if err != nil {
		code := codeUpstreamError
		if errors.Is(err, hearing.ErrNotConfigured) {
			code = codeNotConfigured
		}
		logger.Error().Err(err).Str("provider", s.relay.Name()).Msg("Completion call failed")
		writeError(w, http.StatusInternalServerError, msgChatFailed, code)
		return
	}

	transcript := append(append([]hearing.Message{}, req.Messages...), hearing.Message{
		Role:    hearing.RoleAssistant,
		Content: reply,
	})

	// Best-effort persistence: a storage failure is logged and swallowed,
	// the reply is returned regardless.
	if req.SessionID != "" && s.store != nil {
		err := s.store.Upsert(r.Context(), hearing.Session{
			ID:       req.SessionID,
			Messages: transcript,
		})
		if err != nil {
			logger.Error().
				Err(err).
				Str("session_id", req.SessionID).
				Msg("Failed to save session, returning reply anyway")
		}
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Message:   reply,
		SessionID: req.SessionID,
	})
}
