package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/nikmarin/jobboard/internal/domain"
	"github.com/nikmarin/jobboard/internal/service"
	"github.com/nikmarin/jobboard/internal/transport/http/middleware"
	"github.com/nikmarin/jobboard/pkg/validator"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var body struct {
		Comment service.CreateCommentInput `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateComment(body.Comment.Body); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	comment, err := h.commentService.Create(r.Context(), userID, r.PathValue("slug"), body.Comment)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Job not found")
		} else {
			log.Printf("ERROR create comment: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]*domain.Comment{"comment": comment})
}

func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentService.ListByJob(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Job not found")
		} else {
			log.Printf("ERROR list comments: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string][]domain.Comment{"comments": comments})
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	commentID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid comment ID")
		return
	}

	if err := h.commentService.Delete(r.Context(), userID, commentID); err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Comment not found")
		case errors.Is(err, service.ErrNotCommentAuthor):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only the comment author can delete it")
		default:
			log.Printf("ERROR delete comment: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
