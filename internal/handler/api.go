package handler

import (
	"encoding/json"
	"errors"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/acucogn/site/internal/assistant"
	"github.com/acucogn/site/internal/chat"
	"github.com/acucogn/site/internal/middleware"
)

// maxChatBody bounds the JSON request body.
const maxChatBody = 16 << 10

// APIHandler serves the JSON chat endpoint the widget's transport calls.
type APIHandler struct {
	responder assistant.Responder
	policy    *bluemonday.Policy
}

// NewAPIHandler creates an APIHandler answering with responder.
func NewAPIHandler(responder assistant.Responder) *APIHandler {
	return &APIHandler{responder: responder, policy: bluemonday.StrictPolicy()}
}

// Chat handles POST /api/chat: {"message": "..."} in, {"response": "..."}
// out. A blank message is 400 and a responder failure is 502.
func (h *APIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxChatBody)

	var req chat.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.WriteAPIError(w, http.StatusRequestEntityTooLarge, "too_large", "Message is too long.")
			return
		}
		middleware.WriteAPIError(w, http.StatusBadRequest, "invalid_json", "Request body must be JSON with a message field.")
		return
	}

	message := strings.TrimSpace(html.UnescapeString(h.policy.Sanitize(req.Message)))
	if message == "" {
		middleware.WriteAPIError(w, http.StatusBadRequest, "empty_message", "Message is required.")
		return
	}
	if utf8.RuneCountInString(message) > chat.MaxMessageLength {
		message = string([]rune(message)[:chat.MaxMessageLength])
	}

	reply, err := h.responder.Reply(r.Context(), message)
	if err != nil {
		slog.ErrorContext(r.Context(), "chat responder failed", "provider", h.responder.Name(), "error", err)
		middleware.WriteAPIError(w, http.StatusBadGateway, "upstream_error", "The assistant is unavailable.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(chat.Response{Response: reply})
}
