// Package rest provides HTTP handlers for the shop API.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	shoperrors "github.com/zhiidetopchubaeva/shop/internal/shop/errors"
	"github.com/zhiidetopchubaeva/shop/internal/shop/service"
	"github.com/zhiidetopchubaeva/shop/pkg/web"
)

// Services groups the use cases exposed over HTTP.
type Services struct {
	Accounts     service.AccountService
	Products     service.ProductService
	Categories   service.CategoryService
	Comments     service.CommentService
	Interactions service.InteractionService
}

type Handler struct {
	accounts     service.AccountService
	products     service.ProductService
	categories   service.CategoryService
	comments     service.CommentService
	interactions service.InteractionService
	validate     *validator.Validate
	logger       *slog.Logger
}

// NewHandler creates a new Handler with the provided services.
func NewHandler(services Services, logger *slog.Logger) *Handler {
	return &Handler{
		accounts:     services.Accounts,
		products:     services.Products,
		categories:   services.Categories,
		comments:     services.Comments,
		interactions: services.Interactions,
		validate:     validator.New(),
		logger:       logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes of the shop API.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/account", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.CreateProduct)
		r.Get("/search", h.SearchProducts)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindProduct)
			r.Put("/", h.ReplaceProduct)
			r.Patch("/", h.PatchProduct)
			r.Delete("/", h.DeleteProduct)
		})
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
		r.Delete("/{id}", h.DeleteCategory)
	})

	r.Route("/comments", func(r chi.Router) {
		r.Post("/", h.CreateComment)
		r.Put("/{id}", h.UpdateComment)
		r.Patch("/{id}", h.PatchComment)
		r.Delete("/{id}", h.DeleteComment)
	})

	r.Get("/toggle_like/{product_id}", h.ToggleLike)
	r.Post("/toggle_like/{product_id}", h.ToggleLike)
	r.Post("/add_rating/{product_id}", h.AddRating)
}

func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}

// decodeValid decodes the JSON body into dst and validates it.
// On failure the response has been written and false is returned.
func (h *Handler) decodeValid(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			logger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, logger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return false
		}
		logger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// respondServiceError maps a service error onto a status code.
// action completes the 500 message, e.g. "create product".
func respondServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, action string) {
	ctx := r.Context()
	var validationErr *shoperrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.WarnContext(ctx, "Validation failed", "field", validationErr.Field, "error", validationErr.Message)
		web.RespondError(w, logger, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, shoperrors.ErrValidation):
		logger.WarnContext(ctx, "Validation failed", "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, err.Error())
	case errors.Is(err, shoperrors.ErrUnauthorized):
		logger.WarnContext(ctx, "Unauthenticated request", "action", action)
		web.RespondError(w, logger, http.StatusUnauthorized, "Authentication credentials were not provided")
	case errors.Is(err, shoperrors.ErrInvalidCredentials):
		logger.WarnContext(ctx, "Invalid credentials")
		web.RespondError(w, logger, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, shoperrors.ErrForbidden):
		logger.WarnContext(ctx, "Permission denied", "action", action)
		web.RespondError(w, logger, http.StatusForbidden, "You do not have permission to perform this action")
	case errors.Is(err, shoperrors.ErrProductNotFound):
		logger.WarnContext(ctx, "Product not found", "error", err)
		web.RespondError(w, logger, http.StatusNotFound, "Product not found")
	case errors.Is(err, shoperrors.ErrCategoryNotFound):
		logger.WarnContext(ctx, "Category not found", "error", err)
		web.RespondError(w, logger, http.StatusNotFound, "Category not found")
	case errors.Is(err, shoperrors.ErrCommentNotFound):
		logger.WarnContext(ctx, "Comment not found", "error", err)
		web.RespondError(w, logger, http.StatusNotFound, "Comment not found")
	case errors.Is(err, shoperrors.ErrUserNotFound):
		logger.WarnContext(ctx, "User not found", "error", err)
		web.RespondError(w, logger, http.StatusNotFound, "User not found")
	case errors.Is(err, shoperrors.ErrUserAlreadyExists):
		logger.WarnContext(ctx, "User already exists")
		web.RespondError(w, logger, http.StatusConflict, "A user with that username or email already exists")
	case errors.Is(err, shoperrors.ErrCategoryAlreadyExists):
		logger.WarnContext(ctx, "Category already exists")
		web.RespondError(w, logger, http.StatusConflict, "A category with that name already exists")
	case errors.Is(err, service.ErrLoginUnavailable):
		logger.WarnContext(ctx, "Local login requested in idp mode")
		web.RespondError(w, logger, http.StatusNotImplemented, "Login is handled by the identity provider")
	case errors.Is(err, service.ErrIdPInteractionFailed):
		logger.ErrorContext(ctx, "Identity provider failure", "action", action, "error", err)
		web.RespondError(w, logger, http.StatusBadGateway, "Failed to "+action)
	default:
		logger.ErrorContext(ctx, "Internal error", "action", action, "error", err)
		web.RespondError(w, logger, http.StatusInternalServerError, "Failed to "+action)
	}
}
