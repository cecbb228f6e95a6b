package handler

import (
	"net/http"

	"stocklens/internal/insights"
	"stocklens/internal/middleware"
)

// InsightsHandler runs the insights generation pipeline for the caller.
type InsightsHandler struct {
	pipeline *insights.Pipeline
}

func NewInsightsHandler(pipeline *insights.Pipeline) *InsightsHandler {
	return &InsightsHandler{pipeline: pipeline}
}

func (h *InsightsHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	userID := middleware.UserIDFrom(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "caller identity is required")
		return
	}

	result, perr := h.pipeline.Generate(r.Context(), userID)
	if perr != nil {
		// Classified message only; diagnostics stay with the operators.
		writeJSON(w, perr.HTTPStatus(), errorResponse{Error: perr.Message, Kind: string(perr.Kind)})
		return
	}
	writeJSON(w, http.StatusOK, result)
}
