package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/nikmarin/jobboard/internal/domain"
	"github.com/nikmarin/jobboard/internal/service"
	"github.com/nikmarin/jobboard/pkg/validator"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Category service.CreateCategoryInput `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateCategory(body.Category.Name); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	category, err := h.categoryService.Create(r.Context(), body.Category)
	if err != nil {
		if errors.Is(err, service.ErrCategorySlugTaken) {
			writeError(w, http.StatusConflict, "CATEGORY_EXISTS", "Category already exists")
		} else {
			log.Printf("ERROR create category: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]*domain.Category{"category": category})
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		log.Printf("ERROR list categories: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]domain.Category{"categories": categories})
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.categoryService.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Category not found")
		} else {
			log.Printf("ERROR get category: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]*domain.Category{"category": category})
}
