package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/nikmarin/jobboard/internal/service"
	"github.com/nikmarin/jobboard/internal/transport/http/middleware"
	"github.com/nikmarin/jobboard/pkg/validator"
)

type JobHandler struct {
	jobService *service.JobService
}

func NewJobHandler(jobService *service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

type jobEnvelope struct {
	Job *service.JobResponse `json:"job"`
}

type jobsEnvelope struct {
	Jobs []service.JobResponse `json:"jobs"`
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var body struct {
		Job service.CreateJobInput `json:"job"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateJob(body.Job.Title, body.Job.Description); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	resp, err := h.jobService.Create(r.Context(), userID, body.Job)
	if err != nil {
		if errors.Is(err, service.ErrJobSlugTaken) {
			writeError(w, http.StatusConflict, "SLUG_TAKEN", "A job with this title already exists")
		} else {
			log.Printf("ERROR create job: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, jobEnvelope{Job: resp})
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.MaybeUserID(r.Context())

	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	jobs, err := h.jobService.List(r.Context(), viewerID, service.ListJobsInput{
		Category:  q.Get("category"),
		Author:    q.Get("author"),
		Favorited: q.Get("favorited"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		log.Printf("ERROR list jobs: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, jobsEnvelope{Jobs: jobs})
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.MaybeUserID(r.Context())

	resp, err := h.jobService.GetBySlug(r.Context(), viewerID, r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Job not found")
		} else {
			log.Printf("ERROR get job: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, jobEnvelope{Job: resp})
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var body struct {
		Job service.UpdateJobInput `json:"job"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	resp, err := h.jobService.Update(r.Context(), userID, r.PathValue("slug"), body.Job)
	if err != nil {
		writeJobError(w, err, "update job")
		return
	}

	writeJSON(w, http.StatusOK, jobEnvelope{Job: resp})
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.jobService.Delete(r.Context(), userID, r.PathValue("slug")); err != nil {
		writeJobError(w, err, "delete job")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *JobHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	resp, err := h.jobService.Favorite(r.Context(), userID, r.PathValue("slug"))
	if err != nil {
		writeJobError(w, err, "favorite job")
		return
	}

	writeJSON(w, http.StatusOK, jobEnvelope{Job: resp})
}

func (h *JobHandler) Unfavorite(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	resp, err := h.jobService.Unfavorite(r.Context(), userID, r.PathValue("slug"))
	if err != nil {
		writeJobError(w, err, "unfavorite job")
		return
	}

	writeJSON(w, http.StatusOK, jobEnvelope{Job: resp})
}

func writeJobError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, service.ErrJobNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Job not found")
	case errors.Is(err, service.ErrNotJobAuthor):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Only the job author can perform this action")
	default:
		log.Printf("ERROR %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}
