package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/zhiidetopchubaeva/shop/internal/shop/policy"
	"github.com/zhiidetopchubaeva/shop/internal/shop/store"
	"github.com/zhiidetopchubaeva/shop/pkg/auth"
)

// CategoryService defines the methods for managing categories.
type CategoryService interface {
	FindAll(ctx context.Context) ([]CategoryDto, error)
	// Create returns ErrCategoryAlreadyExists if the name is taken.
	Create(ctx context.Context, principal auth.Principal, category CategoryCreateDto) (*CategoryDto, error)
	// Delete detaches the category's products and removes it.
	Delete(ctx context.Context, principal auth.Principal, id uuid.UUID) error
}

// Categories implements CategoryService.
type Categories struct {
	repository store.CategoryStore
}

func NewCategoryService(repo store.CategoryStore) *Categories {
	return &Categories{repository: repo}
}

func (s *Categories) FindAll(ctx context.Context) ([]CategoryDto, error) {
	found, err := s.repository.FindAllCategories(ctx)
	if err != nil {
		return nil, err
	}
	categories := make([]CategoryDto, 0, len(found))
	for i := range found {
		categories = append(categories, *toCategoryDto(&found[i]))
	}
	return categories, nil
}

func (s *Categories) Create(ctx context.Context, principal auth.Principal, category CategoryCreateDto) (*CategoryDto, error) {
	if err := policy.Categories.Authorize(principal, policy.Create); err != nil {
		return nil, err
	}
	created, err := s.repository.CreateCategory(ctx, category.Name)
	if err != nil {
		return nil, err
	}
	return toCategoryDto(created), nil
}

func (s *Categories) Delete(ctx context.Context, principal auth.Principal, id uuid.UUID) error {
	if err := policy.Categories.Authorize(principal, policy.Delete); err != nil {
		return err
	}
	return s.repository.DeleteCategory(ctx, id)
}
