package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/zhiidetopchubaeva/shop/pkg/auth"
	"github.com/zhiidetopchubaeva/shop/pkg/web"
)

type toggleLikeResponse struct {
	Message string `json:"message"`
	Liked   bool   `json:"liked"`
}

// productIDParam reads the product_id path parameter. A malformed id maps to
// uuid.Nil, which no product has, so it surfaces as not found once the caller
// is authenticated.
func productIDParam(r *http.Request) uuid.UUID {
	id, err := uuid.Parse(chi.URLParam(r, "product_id"))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// ToggleLike flips the like of the calling user on a product.
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	productID := productIDParam(r)
	mLogger.DebugContext(r.Context(), "Received request to toggle like", "product_id", productID)

	liked, err := h.interactions.ToggleLike(r.Context(), auth.PrincipalFromContext(r.Context()), productID)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "toggle like")
		return
	}
	mLogger.InfoContext(r.Context(), "Like toggled", "product_id", productID, "liked", liked)
	web.RespondJSON(w, mLogger, http.StatusOK, toggleLikeResponse{Message: "Like toggled", Liked: liked})
}

// AddRating records the calling user's rating of a product, overwriting an earlier one.
func (h *Handler) AddRating(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	productID := productIDParam(r)
	value := ratingValue(r, mLogger)
	mLogger.DebugContext(r.Context(), "Received request to add rating", "product_id", productID, "value", value)

	created, err := h.interactions.AddRating(r.Context(), auth.PrincipalFromContext(r.Context()), productID, value)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "add rating")
		return
	}
	if created {
		mLogger.InfoContext(r.Context(), "Rating created", "product_id", productID)
		web.RespondMessage(w, mLogger, http.StatusCreated, "Rating created")
		return
	}
	mLogger.InfoContext(r.Context(), "Rating updated", "product_id", productID)
	web.RespondMessage(w, mLogger, http.StatusOK, "Rating updated")
}

// ratingValue extracts the raw "value" field from a JSON or form body.
// JSON numbers and strings are both accepted. An absent or unreadable value
// yields "", leaving the verdict to the service's ordered checks.
func ratingValue(r *http.Request, logger *slog.Logger) string {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data" {
		if err := r.ParseForm(); err != nil {
			logger.WarnContext(r.Context(), "Error parsing rating form", "error", err)
			return ""
		}
		return strings.TrimSpace(r.PostForm.Get("value"))
	}

	var body struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if !errors.Is(err, io.EOF) {
			logger.WarnContext(r.Context(), "Error decoding rating body", "error", err)
		}
		return ""
	}
	raw := bytes.TrimSpace(body.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return string(raw)
}
