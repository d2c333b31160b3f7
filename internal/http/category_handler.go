package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/HenriqueBragaMoreira/gesture-pro/internal/model"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/service"
	"github.com/HenriqueBragaMoreira/gesture-pro/pkg/validator"
)

type CategoryHandler struct {
	svc      service.CategoryService
	validate validator.Validator
	logger   *slog.Logger
}

func NewCategoryHandler(svc service.CategoryService, validate validator.Validator, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, validate: validate, logger: logger}
}

type categoryRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type categoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type categoriesListResponse struct {
	Categories []categoryResponse `json:"categories"`
	Total      int64              `json:"total"`
}

func toCategoryResponse(c model.Category) categoryResponse {
	return categoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, r, err)
		return
	}
	if err := h.validate.Validate(req); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	category, err := h.svc.CreateCategory(r.Context(), req.Name)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toCategoryResponse(category))
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	category, err := h.svc.GetCategory(r.Context(), id)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toCategoryResponse(category))
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit := parsePagination(r)
	params := service.ListCategoriesParams{
		Offset: offset,
		Limit:  limit,
		Name:   r.URL.Query().Get("name"),
	}

	categories, total, err := h.svc.ListCategories(r.Context(), params)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	res := categoriesListResponse{
		Categories: make([]categoryResponse, 0, len(categories)),
		Total:      total,
	}
	for _, c := range categories {
		res.Categories = append(res.Categories, toCategoryResponse(c))
	}

	respondJSON(w, http.StatusOK, res)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, r, err)
		return
	}
	if err := h.validate.Validate(req); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	category, err := h.svc.UpdateCategoryName(r.Context(), id, req.Name)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toCategoryResponse(category))
}
