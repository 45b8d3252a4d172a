package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	shoperrors "github.com/zhiidetopchubaeva/shop/internal/shop/errors"
	"github.com/zhiidetopchubaeva/shop/internal/shop/events"
	"github.com/zhiidetopchubaeva/shop/internal/shop/policy"
	"github.com/zhiidetopchubaeva/shop/internal/shop/store"
	"github.com/zhiidetopchubaeva/shop/pkg/auth"
	"github.com/zhiidetopchubaeva/shop/pkg/messaging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	MinRating = 1
	MaxRating = 5
)

// InteractionService handles likes and ratings.
type InteractionService interface {
	// ToggleLike flips the like of the principal on a product and reports
	// whether the product is liked afterwards.
	// Returns ErrUnauthorized for an anonymous principal and ErrProductNotFound
	// for an unknown product.
	ToggleLike(ctx context.Context, principal auth.Principal, productID uuid.UUID) (bool, error)

	// AddRating stores the principal's rating of a product, overwriting an
	// earlier one. It reports whether a new rating was created.
	// Preconditions are checked in order: authentication, value presence,
	// value range, product existence.
	AddRating(ctx context.Context, principal auth.Principal, productID uuid.UUID, value string) (bool, error)
}

// InteractionRepository is the storage the interaction service needs.
type InteractionRepository interface {
	store.InteractionStore
	ProductExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Interactions implements InteractionService.
type Interactions struct {
	repository    InteractionRepository
	publisher     messaging.Publisher
	logger        *slog.Logger
	likesCounter  metric.Int64Counter
	ratingCounter metric.Int64Counter
}

func NewInteractionService(repo InteractionRepository, publisher messaging.Publisher, logger *slog.Logger) *Interactions {
	meter := otel.Meter("shop-service")
	likesCounter, err := meter.Int64Counter("shop_likes_toggled", metric.WithDescription("Total number of like toggles"))
	if err != nil {
		panic(fmt.Sprintf("failed to create shop_likes_toggled counter: %v", err))
	}
	ratingCounter, err := meter.Int64Counter("shop_ratings_submitted", metric.WithDescription("Total number of submitted ratings"))
	if err != nil {
		panic(fmt.Sprintf("failed to create shop_ratings_submitted counter: %v", err))
	}
	return &Interactions{
		repository:    repo,
		publisher:     publisher,
		logger:        logger,
		likesCounter:  likesCounter,
		ratingCounter: ratingCounter,
	}
}

func (s *Interactions) ToggleLike(ctx context.Context, principal auth.Principal, productID uuid.UUID) (bool, error) {
	err := policy.Run(
		func() error { return policy.Interactions.Authorize(principal, policy.Create) },
		func() error { return s.productExists(ctx, productID) },
	)
	if err != nil {
		return false, err
	}

	liked, err := s.repository.ToggleLike(ctx, principal.UserID, productID)
	if err != nil {
		return false, err
	}

	s.likesCounter.Add(ctx, 1, metric.WithAttributes(attribute.Bool("liked", liked)))
	publish(ctx, s.publisher, s.logger, events.LikeToggled{
		UserID:    principal.UserID,
		ProductID: productID,
		Liked:     liked,
		At:        time.Now().UTC(),
	})
	return liked, nil
}

func (s *Interactions) AddRating(ctx context.Context, principal auth.Principal, productID uuid.UUID, value string) (bool, error) {
	var rating int32
	err := policy.Run(
		func() error { return policy.Interactions.Authorize(principal, policy.Create) },
		func() error {
			if strings.TrimSpace(value) == "" {
				return shoperrors.NewValidationError("value", "value is required")
			}
			return nil
		},
		func() error {
			parsed, err := parseRating(value)
			if err != nil {
				return err
			}
			rating = parsed
			return nil
		},
		func() error { return s.productExists(ctx, productID) },
	)
	if err != nil {
		return false, err
	}

	created, err := s.repository.UpsertRating(ctx, principal.UserID, productID, rating)
	if err != nil {
		return false, err
	}

	s.ratingCounter.Add(ctx, 1, metric.WithAttributes(attribute.Bool("created", created)))
	publish(ctx, s.publisher, s.logger, events.RatingSubmitted{
		UserID:    principal.UserID,
		ProductID: productID,
		Value:     rating,
		Created:   created,
		At:        time.Now().UTC(),
	})
	return created, nil
}

func (s *Interactions) productExists(ctx context.Context, productID uuid.UUID) error {
	exists, err := s.repository.ProductExists(ctx, productID)
	if err != nil {
		return err
	}
	if !exists {
		return shoperrors.ErrProductNotFound
	}
	return nil
}

func parseRating(value string) (int32, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 32)
	if err != nil || v < MinRating || v > MaxRating {
		return 0, shoperrors.NewValidationError("value", fmt.Sprintf("value must be an integer between %d and %d", MinRating, MaxRating))
	}
	return int32(v), nil
}
