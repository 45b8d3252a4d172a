package rest

import (
	"net/http"

	"github.com/zhiidetopchubaeva/shop/internal/shop/service"
	"github.com/zhiidetopchubaeva/shop/pkg/auth"
	"github.com/zhiidetopchubaeva/shop/pkg/web"
)

// CreateComment adds a comment to a product.
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var commentDto service.CommentCreateDto
	if !h.decodeValid(w, r, mLogger, &commentDto) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to create comment", "product_id", commentDto.ProductID)

	created, err := h.comments.Create(r.Context(), auth.PrincipalFromContext(r.Context()), commentDto)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "create comment")
		return
	}
	mLogger.InfoContext(r.Context(), "Comment created successfully", "ID", created.ID, "product_id", created.ProductID)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// UpdateComment replaces the comment text. Only the author may do so.
func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var commentDto service.CommentUpdateDto
	if !h.decodeValid(w, r, mLogger, &commentDto) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to update comment", "ID", id)

	updated, err := h.comments.Update(r.Context(), auth.PrincipalFromContext(r.Context()), id, commentDto)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "update comment")
		return
	}
	mLogger.InfoContext(r.Context(), "Comment updated successfully", "ID", id)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

func (h *Handler) PatchComment(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var patch service.CommentPatchDto
	if !h.decodeValid(w, r, mLogger, &patch) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to patch comment", "ID", id)

	updated, err := h.comments.Patch(r.Context(), auth.PrincipalFromContext(r.Context()), id, patch)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "update comment")
		return
	}
	mLogger.InfoContext(r.Context(), "Comment patched successfully", "ID", id)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to delete comment", "ID", id)

	if err := h.comments.Delete(r.Context(), auth.PrincipalFromContext(r.Context()), id); err != nil {
		respondServiceError(w, r, mLogger, err, "delete comment")
		return
	}
	mLogger.InfoContext(r.Context(), "Comment deleted successfully", "ID", id)
	web.RespondJSON(w, mLogger, http.StatusNoContent, nil)
}
