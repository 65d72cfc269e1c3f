package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/dvloznov/financehub/internal/api/middleware"
	"github.com/dvloznov/financehub/internal/jobs"
)

// JobsHandler enqueues exports and answers status polls.
type JobsHandler struct {
	publisher jobs.Publisher
	store     jobs.Store
	log       zerolog.Logger
}

func NewJobsHandler(publisher jobs.Publisher, store jobs.Store, log zerolog.Logger) *JobsHandler {
	return &JobsHandler{publisher: publisher, store: store, log: log}
}

type exportRequest struct {
	Destinations []jobs.Destination `json:"destinations"`
}

// CreateExport handles POST /api/exports (authenticated).
func (h *JobsHandler) CreateExport(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		middleware.WriteError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Destinations) == 0 {
		req.Destinations = []jobs.Destination{jobs.DestinationBigQuery}
	}

	job := &jobs.ExportUserJob{
		UserID:       claims.UserID,
		Destinations: req.Destinations,
	}
	if err := h.publisher.PublishExport(r.Context(), job); err != nil {
		h.log.Error().Err(err).Str("user_id", claims.UserID).Msg("Enqueueing export failed")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue export")
		return
	}

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{"jobId": job.JobID})
}

// GetJob handles GET /api/jobs/{id}
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["id"]

	job, err := h.store.GetJob(r.Context(), jobID)
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}
