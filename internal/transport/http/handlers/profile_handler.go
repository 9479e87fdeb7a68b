package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/nikmarin/jobboard/internal/service"
	"github.com/nikmarin/jobboard/internal/transport/http/middleware"
)

type ProfileHandler struct {
	userService *service.UserService
}

func NewProfileHandler(userService *service.UserService) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

type profileEnvelope struct {
	Profile *service.ProfileResponse `json:"profile"`
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	viewerID := middleware.MaybeUserID(r.Context())

	profile, err := h.userService.Profile(r.Context(), viewerID, username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Profile not found")
		} else {
			log.Printf("ERROR get profile: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, profileEnvelope{Profile: profile})
}

func (h *ProfileHandler) Follow(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	viewerID := middleware.GetUserID(r.Context())

	profile, err := h.userService.Follow(r.Context(), viewerID, username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Profile not found")
		case errors.Is(err, service.ErrCannotFollowSelf):
			writeError(w, http.StatusUnprocessableEntity, "CANNOT_FOLLOW_SELF", "You cannot follow yourself")
		default:
			log.Printf("ERROR follow: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, profileEnvelope{Profile: profile})
}

func (h *ProfileHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	viewerID := middleware.GetUserID(r.Context())

	profile, err := h.userService.Unfollow(r.Context(), viewerID, username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Profile not found")
		} else {
			log.Printf("ERROR unfollow: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, profileEnvelope{Profile: profile})
}
