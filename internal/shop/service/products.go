// Package service provides the business logic of the shop: resource CRUD,
// likes and ratings, and accounts. Every mutating operation is authorized
// against the acting principal before it reaches the store.
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/zhiidetopchubaeva/shop/internal/shop/policy"
	"github.com/zhiidetopchubaeva/shop/internal/shop/store"
	"github.com/zhiidetopchubaeva/shop/internal/shop/store/db"
	"github.com/zhiidetopchubaeva/shop/pkg/auth"
)

// ProductService defines the methods for managing products.
type ProductService interface {
	// List returns a page of products, optionally filtered by title substring.
	List(ctx context.Context, query ProductQuery) ([]ProductDto, error)

	// FindByID returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*ProductDto, error)

	// Create adds a new product authored by the principal.
	Create(ctx context.Context, principal auth.Principal, product ProductCreateDto) (*ProductDto, error)

	// Replace overwrites every field of a product. Only the author may do so.
	Replace(ctx context.Context, principal auth.Principal, id uuid.UUID, product ProductCreateDto) (*ProductDto, error)

	// Patch updates the non-nil fields of a product. Only the author may do so.
	Patch(ctx context.Context, principal auth.Principal, id uuid.UUID, patch ProductPatchDto) (*ProductDto, error)

	// Delete removes a product. Only the author may do so.
	Delete(ctx context.Context, principal auth.Principal, id uuid.UUID) error
}

// Products implements ProductService.
type Products struct {
	repository store.ProductStore
}

// NewProductService creates a new instance of ProductService with the provided repository.
func NewProductService(repo store.ProductStore) *Products {
	return &Products{repository: repo}
}

func (s *Products) List(ctx context.Context, query ProductQuery) ([]ProductDto, error) {
	views, err := s.repository.ListProducts(ctx, store.ProductFilter{
		Title:  query.Title,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		return nil, err
	}
	products := make([]ProductDto, 0, len(views))
	for i := range views {
		products = append(products, *toProductDto(&views[i]))
	}
	return products, nil
}

func (s *Products) FindByID(ctx context.Context, id uuid.UUID) (*ProductDto, error) {
	view, err := s.repository.FindProductView(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductDto(view), nil
}

func (s *Products) Create(ctx context.Context, principal auth.Principal, product ProductCreateDto) (*ProductDto, error) {
	if err := policy.Products.Authorize(principal, policy.Create); err != nil {
		return nil, err
	}
	created, err := s.repository.CreateProduct(ctx, db.CreateProductParams{
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		CategoryID:  product.CategoryID,
		AuthorID:    principal.UserID,
	})
	if err != nil {
		return nil, err
	}
	return toProductDto(&store.ProductView{Product: *created}), nil
}

func (s *Products) Replace(ctx context.Context, principal auth.Principal, id uuid.UUID, product ProductCreateDto) (*ProductDto, error) {
	return s.update(ctx, principal, id, func(current *db.Product) db.UpdateProductParams {
		return db.UpdateProductParams{
			ID:          id,
			Title:       product.Title,
			Description: product.Description,
			Price:       product.Price,
			CategoryID:  product.CategoryID,
		}
	})
}

func (s *Products) Patch(ctx context.Context, principal auth.Principal, id uuid.UUID, patch ProductPatchDto) (*ProductDto, error) {
	return s.update(ctx, principal, id, func(current *db.Product) db.UpdateProductParams {
		params := db.UpdateProductParams{
			ID:          id,
			Title:       current.Title,
			Description: current.Description,
			Price:       current.Price,
			CategoryID:  current.CategoryID,
		}
		if patch.Title != nil {
			params.Title = *patch.Title
		}
		if patch.Description != nil {
			params.Description = *patch.Description
		}
		if patch.Price != nil {
			params.Price = *patch.Price
		}
		if patch.CategoryID.Set {
			params.CategoryID = patch.CategoryID.Value
		}
		return params
	})
}

// update authorizes the principal, loads the product, checks authorship and writes.
func (s *Products) update(ctx context.Context, principal auth.Principal, id uuid.UUID, build func(current *db.Product) db.UpdateProductParams) (*ProductDto, error) {
	current, err := s.authorOwned(ctx, principal, id, policy.Update)
	if err != nil {
		return nil, err
	}
	if _, err := s.repository.UpdateProduct(ctx, build(current)); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

func (s *Products) Delete(ctx context.Context, principal auth.Principal, id uuid.UUID) error {
	if _, err := s.authorOwned(ctx, principal, id, policy.Delete); err != nil {
		return err
	}
	return s.repository.DeleteProduct(ctx, id)
}

func (s *Products) authorOwned(ctx context.Context, principal auth.Principal, id uuid.UUID, action policy.Action) (*db.Product, error) {
	if err := policy.Products.Authorize(principal, action); err != nil {
		return nil, err
	}
	current, err := s.repository.FindProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Products.AuthorizeObject(principal, action, current.AuthorID); err != nil {
		return nil, err
	}
	return current, nil
}
