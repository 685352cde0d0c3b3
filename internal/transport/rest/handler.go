package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"pediatric-triage/internal/catalog"
	apperrors "pediatric-triage/internal/common/errors"
	"pediatric-triage/internal/common/logger"
	"pediatric-triage/internal/models"
	"pediatric-triage/internal/triage"
)

const maxBodyBytes = 1 << 20

// Handler serves the catalog and triage endpoints.
type Handler struct {
	catalog *catalog.Catalog
	triage  *triage.Service
	logger  logger.Logger
}

func NewHandler(cat *catalog.Catalog, svc *triage.Service, log logger.Logger) *Handler {
	return &Handler{catalog: cat, triage: svc, logger: log}
}

// Questions handles GET /questions
func (h *Handler) Questions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog)
}

// Triage handles POST /triage
func (h *Handler) Triage(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r.Context(), h.logger)

	var req models.TriageRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			apperrors.WriteHTTP(w, log, apperrors.NewInvalidRequestError("empty request body"))
			return
		}
		apperrors.WriteHTTP(w, log, apperrors.NewInvalidRequestError(err.Error()))
		return
	}
	if req.Answers == nil {
		apperrors.WriteHTTP(w, log, apperrors.NewInvalidRequestError("answers is required"))
		return
	}

	writeJSON(w, http.StatusOK, h.triage.Triage(r.Context(), &req))
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		apperrors.WriteHTTP(w, nil, apperrors.NewInternalError(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
