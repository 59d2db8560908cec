package server

import (
	"encoding/json"
	"net/http"
)

// Machine error codes returned alongside the user-facing message.
const (
	codeInvalidRequest   = "invalid_request"
	codeNotConfigured    = "not_configured"
	codeUnauthorized     = "unauthorized"
	codeUpstreamError    = "upstream_error"
	codePersistenceError = "persistence_error"
)

// User-facing messages. Internal error detail never leaves the server;
// these are the only strings a caller sees on failure.
const (
	msgChatFailed        = "チャットの処理中にエラーが発生しました"
	msgInvalidRequest    = "リクエストの形式が正しくありません"
	msgUnauthorized      = "Unauthorized"
	msgDBNotConfigured   = "データベースが設定されていません"
	msgSessionListFailed = "セッションの取得に失敗しました"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}
