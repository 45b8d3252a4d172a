package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	shoperrors "github.com/zhiidetopchubaeva/shop/internal/shop/errors"
	"github.com/zhiidetopchubaeva/shop/internal/shop/store/db"
)

// ToggleLike deletes the like first and inserts only when nothing was deleted.
// The DELETE locks an existing row for the rest of the transaction. Two callers
// racing on an absent row both reach the INSERT; the loser hits the primary key,
// its transaction is re-run and the re-run deletes the winner's row.
func (p *PgStore) ToggleLike(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var liked bool
	err := p.withRetry(ctx, func(qtx *db.Queries) error {
		deleted, err := qtx.DeleteLike(ctx, db.DeleteLikeParams{UserID: userID, ProductID: productID})
		if err != nil {
			return fmt.Errorf("failed to delete like: %w", err)
		}
		if deleted > 0 {
			liked = false
			return nil
		}
		if err := qtx.InsertLike(ctx, db.InsertLikeParams{UserID: userID, ProductID: productID}); err != nil {
			return interactionError(err)
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

// UpsertRating updates in place and inserts only when no row matched. A lost
// insert race is re-run and becomes an update.
func (p *PgStore) UpsertRating(ctx context.Context, userID, productID uuid.UUID, value int32) (bool, error) {
	var created bool
	err := p.withRetry(ctx, func(qtx *db.Queries) error {
		updated, err := qtx.UpdateRating(ctx, db.UpdateRatingParams{UserID: userID, ProductID: productID, Value: value})
		if err != nil {
			return fmt.Errorf("failed to update rating: %w", err)
		}
		if updated > 0 {
			created = false
			return nil
		}
		if err := qtx.InsertRating(ctx, db.InsertRatingParams{UserID: userID, ProductID: productID, Value: value}); err != nil {
			return interactionError(err)
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func interactionError(err error) error {
	if isUniqueViolation(err) {
		return shoperrors.ErrConstraintViolation
	}
	if target, ok := foreignKeyTarget(err); ok {
		return target
	}
	return fmt.Errorf("failed to insert interaction: %w", err)
}
