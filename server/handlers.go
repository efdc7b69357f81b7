package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bububa/heroku-a2a/a2a"
	"github.com/bububa/heroku-a2a/tools"
)

// QueryRequest is the body of POST /query
type QueryRequest struct {
	Query string   `json:"query" validate:"required"`
	Tools []string `json:"tools,omitempty"`
}

// QueryResponse is the answer of POST /query
type QueryResponse struct {
	Response string `json:"response"`
	// ToolsUsed are the tools attached to the agent
	ToolsUsed []string `json:"tools_used"`
	// ToolsInvoked are the tools the model called
	ToolsInvoked []string `json:"tools_invoked,omitempty"`
}

type rootResponse struct {
	Message        string   `json:"message"`
	AvailableTools []string `json:"available_tools"`
}

type toolsResponse struct {
	Tools []string `json:"tools"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Requests int64  `json:"requests"`
	Failures int64  `json:"failures"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Message:        "Heroku A2A Agent API",
		AvailableTools: s.registry.Names(),
	})
}

func (s *Server) handleTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toolsResponse{Tools: s.registry.Names()})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Requests: s.requests.Load(),
		Failures: s.failures.Load(),
	})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if !s.decode(w, r, &req) {
		return
	}
	var (
		explicit    []tools.AnonymousTool
		useRegistry = true
	)
	if len(req.Tools) > 0 {
		explicit = s.registry.Select(req.Tools...)
		useRegistry = false
	}
	agent, err := s.factory.CreateAgent("", explicit, useRegistry)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing query: %v", err))
		return
	}
	answer, err := agent.Ask(r.Context(), req.Query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing query: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, QueryResponse{
		Response:     answer,
		ToolsUsed:    agent.ToolsUsed(),
		ToolsInvoked: agent.ToolsInvoked(),
	})
}

func (s *Server) handleA2A(w http.ResponseWriter, r *http.Request) {
	var req a2a.Request
	if !s.decode(w, r, &req) {
		return
	}
	ret, err := s.orchestrator.Run(r.Context(), req)
	if err != nil {
		if errors.Is(err, a2a.ErrInvalidRequest) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing A2A request: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, ret)
}

// decode reads and validates the JSON body into v, writing the error response on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	if err := tools.Validate(v); err != nil {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}
