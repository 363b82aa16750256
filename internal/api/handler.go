package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/btvapps/timelogr/internal/timelog"
)

// Handler exposes the aggregation pipeline over HTTP with the same
// request/response shapes the CLI uses internally.
type Handler struct {
	service *timelog.Service
	logger  *slog.Logger
}

func NewHandler(service *timelog.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Routes builds the HTTP mux for the handler.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/timelogs", h.handleTimelogs)
	return mux
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (h *Handler) handleTimelogs(w http.ResponseWriter, r *http.Request) {
	var req timelog.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", timelog.ErrInvalidInput, err))
		return
	}

	data, err := h.service.Fetch(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	h.logger.Error("request failed", "status", status, "error", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(errorResponse{
		Error: err.Error(),
		Kind:  timelog.Kind(err),
	}); encodeErr != nil {
		h.logger.Error("failed to write error response", "error", encodeErr)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, timelog.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, timelog.ErrConfigMissing):
		return http.StatusInternalServerError
	case errors.Is(err, timelog.ErrUpstreamStatus), errors.Is(err, timelog.ErrUpstreamProtocol):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
