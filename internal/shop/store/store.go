// Package store provides the storage operations of the shop service.
package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/zhiidetopchubaeva/shop/internal/shop/store/db"
)

// UserStore is an interface for user storage operations.
type UserStore interface {
	// CreateUser inserts a new user.
	// Returns ErrUserAlreadyExists if the username or email is taken.
	CreateUser(ctx context.Context, params db.CreateUserParams) (*db.User, error)

	// FindUserByID returns ErrUserNotFound if no user exists with the given ID.
	FindUserByID(ctx context.Context, id uuid.UUID) (*db.User, error)

	// FindUserByUsername returns ErrUserNotFound if no user exists with the given username.
	FindUserByUsername(ctx context.Context, username string) (*db.User, error)

	// EnsureUser returns the user with the given ID, creating it first if needed.
	EnsureUser(ctx context.Context, id uuid.UUID, username string) (*db.User, error)
}

// ProductStore is an interface for product storage operations.
type ProductStore interface {
	// FindProductByID returns ErrProductNotFound if no product exists with the given ID.
	FindProductByID(ctx context.Context, id uuid.UUID) (*db.Product, error)

	// FindProductView returns the product together with its like and rating aggregates.
	FindProductView(ctx context.Context, id uuid.UUID) (*ProductView, error)

	// ListProducts returns products matching the filter, newest first.
	// Returns an empty slice if nothing matches.
	ListProducts(ctx context.Context, filter ProductFilter) ([]ProductView, error)

	// ProductExists reports whether a product with the given ID exists.
	ProductExists(ctx context.Context, id uuid.UUID) (bool, error)

	// CreateProduct returns ErrCategoryNotFound if the category does not exist.
	CreateProduct(ctx context.Context, params db.CreateProductParams) (*db.Product, error)

	// UpdateProduct returns ErrProductNotFound or ErrCategoryNotFound.
	UpdateProduct(ctx context.Context, params db.UpdateProductParams) (*db.Product, error)

	// DeleteProduct returns ErrProductNotFound if no product exists with the given ID.
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// CategoryStore is an interface for category storage operations.
type CategoryStore interface {
	// CreateCategory returns ErrCategoryAlreadyExists if the name is taken.
	CreateCategory(ctx context.Context, name string) (*db.Category, error)

	// FindAllCategories returns all categories ordered by name.
	FindAllCategories(ctx context.Context) ([]db.Category, error)

	// DeleteCategory returns ErrCategoryNotFound if no category exists with the given ID.
	// Products of the category keep existing without a category.
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// CommentStore is an interface for comment storage operations.
type CommentStore interface {
	// CreateComment returns ErrProductNotFound if the product does not exist.
	CreateComment(ctx context.Context, params db.CreateCommentParams) (*db.Comment, error)

	// FindCommentByID returns ErrCommentNotFound if no comment exists with the given ID.
	FindCommentByID(ctx context.Context, id uuid.UUID) (*db.Comment, error)

	// UpdateComment returns ErrCommentNotFound if no comment exists with the given ID.
	UpdateComment(ctx context.Context, id uuid.UUID, text string) (*db.Comment, error)

	// DeleteComment returns ErrCommentNotFound if no comment exists with the given ID.
	DeleteComment(ctx context.Context, id uuid.UUID) error
}

// InteractionStore keeps likes and ratings. Both are keyed by the (user, product) pair
// and every operation is atomic for that pair.
type InteractionStore interface {
	// ToggleLike deletes the like of the pair if it exists and creates it otherwise.
	// It reports whether the product is liked afterwards.
	// Returns ErrProductNotFound if the product does not exist.
	ToggleLike(ctx context.Context, userID, productID uuid.UUID) (bool, error)

	// UpsertRating overwrites the rating of the pair or creates it.
	// It reports whether a new row was created.
	// Returns ErrProductNotFound if the product does not exist.
	UpsertRating(ctx context.Context, userID, productID uuid.UUID, value int32) (bool, error)
}

// ProductView is a product with its interaction aggregates.
type ProductView struct {
	db.Product
	LikesCount  int64
	RatingAvg   float64
	RatingCount int64
}

// ProductFilter narrows ListProducts. An empty Title matches every product.
type ProductFilter struct {
	Title  string
	Limit  int32
	Offset int32
}
