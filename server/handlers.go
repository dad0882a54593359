package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	contractx "github.com/ninthbase/shopmate/agent/contract"
)

type startConversationResponse struct {
	ConversationID string `json:"conversation_id"`
}

type submitUtteranceRequest struct {
	Text string `json:"text" validate:"required"`
}

type queryAgentRequest struct {
	Text string `json:"text" validate:"required"`
}

type transcriptResponse struct {
	ConversationID string           `json:"conversation_id"`
	Turns          []contractx.Turn `json:"turns"`
}

func (s *Server) handleStartConversation(w http.ResponseWriter, r *http.Request) {
	id, err := s.orch.StartConversation(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, startConversationResponse{ConversationID: id})
}

func (s *Server) handleSubmitUtterance(w http.ResponseWriter, r *http.Request) {
	var req submitUtteranceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid json body"})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "text is required"})
		return
	}

	resp, err := s.orch.SubmitUtterance(r.Context(), chi.URLParam(r, "id"), req.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	turns, err := s.orch.Transcript(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, transcriptResponse{ConversationID: id, Turns: turns})
}

func (s *Server) handleEndConversation(w http.ResponseWriter, r *http.Request) {
	if err := s.orch.EndConversation(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleQueryAgent(w http.ResponseWriter, r *http.Request) {
	var req queryAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid json body"})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "text is required"})
		return
	}

	resp, err := s.orch.QueryAgent(r.Context(), contractx.AgentID(chi.URLParam(r, "agent")), req.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
