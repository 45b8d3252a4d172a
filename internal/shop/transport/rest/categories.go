package rest

import (
	"net/http"

	"github.com/zhiidetopchubaeva/shop/internal/shop/service"
	"github.com/zhiidetopchubaeva/shop/pkg/auth"
	"github.com/zhiidetopchubaeva/shop/pkg/web"
)

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request to list categories")

	list, err := h.categories.FindAll(r.Context())
	if err != nil {
		respondServiceError(w, r, mLogger, err, "fetch categories")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var categoryDto service.CategoryCreateDto
	if !h.decodeValid(w, r, mLogger, &categoryDto) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to create category", "name", categoryDto.Name)

	created, err := h.categories.Create(r.Context(), auth.PrincipalFromContext(r.Context()), categoryDto)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "create category")
		return
	}
	mLogger.InfoContext(r.Context(), "Category created successfully", "ID", created.ID, "name", created.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to delete category", "ID", id)

	if err := h.categories.Delete(r.Context(), auth.PrincipalFromContext(r.Context()), id); err != nil {
		respondServiceError(w, r, mLogger, err, "delete category")
		return
	}
	mLogger.InfoContext(r.Context(), "Category deleted successfully", "ID", id)
	web.RespondJSON(w, mLogger, http.StatusNoContent, nil)
}
