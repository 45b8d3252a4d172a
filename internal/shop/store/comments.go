package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	shoperrors "github.com/zhiidetopchubaeva/shop/internal/shop/errors"
	"github.com/zhiidetopchubaeva/shop/internal/shop/store/db"
)

func (p *PgStore) CreateComment(ctx context.Context, params db.CreateCommentParams) (*db.Comment, error) {
	comment, err := p.q.CreateComment(ctx, params)
	if err != nil {
		if target, ok := foreignKeyTarget(err); ok {
			return nil, target
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return &comment, nil
}

func (p *PgStore) FindCommentByID(ctx context.Context, id uuid.UUID) (*db.Comment, error) {
	comment, err := p.q.FindCommentByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shoperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment by ID: %w", err)
	}
	return &comment, nil
}

func (p *PgStore) UpdateComment(ctx context.Context, id uuid.UUID, text string) (*db.Comment, error) {
	comment, err := p.q.UpdateComment(ctx, db.UpdateCommentParams{ID: id, Text: text})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shoperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return &comment, nil
}

func (p *PgStore) DeleteComment(ctx context.Context, id uuid.UUID) error {
	count, err := p.q.DeleteComment(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if count == 0 {
		return shoperrors.ErrCommentNotFound
	}
	return nil
}
