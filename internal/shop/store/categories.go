package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	shoperrors "github.com/zhiidetopchubaeva/shop/internal/shop/errors"
	"github.com/zhiidetopchubaeva/shop/internal/shop/store/db"
)

func (p *PgStore) CreateCategory(ctx context.Context, name string) (*db.Category, error) {
	category, err := p.q.CreateCategory(ctx, name)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, shoperrors.ErrCategoryAlreadyExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

func (p *PgStore) FindAllCategories(ctx context.Context) ([]db.Category, error) {
	categories, err := p.q.FindAllCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find all categories: %w", err)
	}
	return categories, nil
}

func (p *PgStore) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	count, err := p.q.DeleteCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if count == 0 {
		return shoperrors.ErrCategoryNotFound
	}
	return nil
}
