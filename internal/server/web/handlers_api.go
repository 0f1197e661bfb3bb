package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/webchat-dev/webchat/internal/common"
)

// getMessages answers the polling protocol: everything with id > after_id,
// oldest first. A missing or malformed after_id falls back to 0, which
// returns the full history.
func (s *Server) getMessages(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	afterID, err := strconv.ParseInt(r.URL.Query().Get("after_id"), 10, 64)
	if err != nil || afterID < 0 {
		afterID = 0
	}

	views, err := s.messages.FetchSince(r.Context(), afterID, sess.UserID)
	if err != nil {
		s.logger.Error(r.Context(), "fetching messages failed", "error", err)
		apiError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	respondJSON(w, http.StatusOK, views)
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	_, err := s.messages.Send(r.Context(), sess.UserID, req.Content)
	if err != nil {
		if errors.Is(err, common.ErrorEmptyContent) {
			apiError(w, http.StatusBadRequest, "Empty content")
			return
		}
		s.logger.Error(r.Context(), "sending message failed", "error", err)
		apiError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	messagesSentTotal.Inc()
	respondJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

// deleteMessage is deliberately feedback-free: whether the id was owned by
// the caller, someone else's, or nonexistent, the response is the same
// redirect back to the room.
func (s *Server) deleteMessage(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err == nil {
		if err := s.messages.Delete(r.Context(), id, sess.UserID); err != nil {
			s.logger.Error(r.Context(), "deleting message failed", "message_id", id, "error", err)
		}
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
