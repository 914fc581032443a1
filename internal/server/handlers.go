package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/agbru/fibbench/internal/engine"
	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/history"
	"github.com/agbru/fibbench/internal/logging"
	"github.com/agbru/fibbench/internal/orchestration"
)

// ErrorResponse is the body of a non-compute error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// AlgorithmInfo describes one algorithm in the /algorithms response.
type AlgorithmInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HistoryResponse is the body of GET /history.
type HistoryResponse struct {
	Entries  []history.Entry `json:"entries"`
	Capacity int             `json:"capacity"`
}

// handleCompute answers a request message with a response message. A
// computation that fails is still 200; only requests that never reached the
// worker get another status, and they still carry a failure message.
func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		status := http.StatusBadRequest
		if tooLarge := new(http.MaxBytesError); errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		s.writeJSONResponse(w, status,
			engine.RejectedResponse(engine.RequestMessage{}, fmt.Errorf("%w: %w", engine.ErrMalformedRequest, err)))
		return
	}

	msg, req, err := engine.DecodeRequest(body)
	if err != nil {
		s.writeJSONResponse(w, http.StatusBadRequest, engine.RejectedResponse(msg, err))
		return
	}
	if limit := s.securityConfig.MaxNValue; limit > 0 && req.N > limit {
		verr := apperrors.ValidationError{
			Field:   "n",
			Message: fmt.Sprintf("exceeds the maximum allowed (%d)", limit),
		}
		s.writeJSONResponse(w, http.StatusBadRequest, engine.RejectedResponse(msg, verr))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	res, err := s.runner.Dispatch(ctx, req)
	if err != nil {
		s.writeJSONResponse(w, dispatchStatus(err), engine.RejectedResponse(msg, err))
		return
	}
	s.writeJSONResponse(w, http.StatusOK, engine.NewResponseMessage(res))
}

func dispatchStatus(err error) int {
	switch {
	case errors.Is(err, orchestration.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, orchestration.ErrNotStarted):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	algos := fibonacci.Algorithms()
	infos := make([]AlgorithmInfo, len(algos))
	for i, a := range algos {
		infos[i] = AlgorithmInfo{Name: a.String(), Description: a.Description()}
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]any{"algorithms": infos})
}

// handleHistory returns the history, newest first. ?limit=k keeps the k
// newest entries.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	resp := HistoryResponse{Entries: []history.Entry{}}
	if s.store != nil {
		resp.Entries = s.store.Entries()
		resp.Capacity = s.store.Capacity()
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			s.writeErrorResponse(w, http.StatusBadRequest, "Invalid 'limit' parameter: must be a non-negative integer")
			return
		}
		if limit < len(resp.Entries) {
			resp.Entries = resp.Entries[:limit]
		}
	}
	s.writeJSONResponse(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"busy":      s.runner.Busy(),
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", err, logging.Int("status", statusCode))
	}
}

func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
