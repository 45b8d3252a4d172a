package rest

import (
	"net/http"

	"github.com/zhiidetopchubaeva/shop/internal/shop/service"
	"github.com/zhiidetopchubaeva/shop/pkg/auth"
	"github.com/zhiidetopchubaeva/shop/pkg/web"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// ListProducts returns a page of products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	h.listProducts(w, r, "")
}

// SearchProducts returns products whose title contains the title query parameter, ignoring case.
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	h.listProducts(w, r, r.URL.Query().Get("title"))
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request, title string) {
	mLogger := h.loggerWithReqID(r)
	limit, ok := web.ParseOptionalBetween(r, w, mLogger, "limit", 1, maxPageSize, defaultPageSize)
	if !ok {
		return
	}
	offset, ok := web.ParseOptionalGte(r, w, mLogger, "offset", 0, 0)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to list products", "title", title, "limit", limit, "offset", offset)

	list, err := h.products.List(r.Context(), service.ProductQuery{Title: title, Limit: limit, Offset: offset})
	if err != nil {
		respondServiceError(w, r, mLogger, err, "fetch products")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindProduct retrieves a product by its ID.
func (h *Handler) FindProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)

	found, err := h.products.FindByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "retrieve product")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// CreateProduct handles the creation of a new product.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var productCreateDto service.ProductCreateDto
	if !h.decodeValid(w, r, mLogger, &productCreateDto) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to create product", "product", productCreateDto)

	created, err := h.products.Create(r.Context(), auth.PrincipalFromContext(r.Context()), productCreateDto)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "create product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID, "title", created.Title)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// ReplaceProduct overwrites every field of a product.
func (h *Handler) ReplaceProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var productDto service.ProductCreateDto
	if !h.decodeValid(w, r, mLogger, &productDto) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to replace product", "ID", id, "product", productDto)

	updated, err := h.products.Replace(r.Context(), auth.PrincipalFromContext(r.Context()), id, productDto)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "update product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// PatchProduct updates the fields present in the body.
func (h *Handler) PatchProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var patch service.ProductPatchDto
	if !h.decodeValid(w, r, mLogger, &patch) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to patch product", "ID", id)

	updated, err := h.products.Patch(r.Context(), auth.PrincipalFromContext(r.Context()), id, patch)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "update product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product patched successfully", "ID", updated.ID)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteProduct removes a product.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to delete product", "ID", id)

	if err := h.products.Delete(r.Context(), auth.PrincipalFromContext(r.Context()), id); err != nil {
		respondServiceError(w, r, mLogger, err, "delete product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	web.RespondJSON(w, mLogger, http.StatusNoContent, nil)
}
