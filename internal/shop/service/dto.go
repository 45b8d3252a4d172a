package service

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/zhiidetopchubaeva/shop/internal/shop/store"
	"github.com/zhiidetopchubaeva/shop/internal/shop/store/db"
)

// RegisterDto is the registration payload.
type RegisterDto struct {
	Username        string `json:"username"         validate:"required,min=3,max=150"`
	Email           string `json:"email"            validate:"required,email,max=254"`
	Password        string `json:"password"         validate:"required,min=8,max=72"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

// LoginDto is the login payload.
type LoginDto struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenDto is returned by a successful login.
type TokenDto struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// UserDto represents the data transfer object for a user.
type UserDto struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email,omitempty"`
}

// ProductCreateDto represents the data transfer object for creating a new product.
type ProductCreateDto struct {
	Title       string     `json:"title"       validate:"required,max=255"`
	Description string     `json:"description" validate:"max=10000"`
	Price       int64      `json:"price"       validate:"min=0"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

// ProductPatchDto carries a partial product update. Nil fields are left unchanged.
// CategoryID distinguishes an absent key from an explicit null, which clears the category.
type ProductPatchDto struct {
	Title       *string      `json:"title"       validate:"omitnil,min=1,max=255"`
	Description *string      `json:"description" validate:"omitnil,max=10000"`
	Price       *int64       `json:"price"       validate:"omitnil,min=0"`
	CategoryID  OptionalUUID `json:"category_id"`
}

// OptionalUUID is a JSON field that records whether its key was present.
// Set with a nil Value means the key was sent as null.
type OptionalUUID struct {
	Set   bool
	Value *uuid.UUID
}

// SomeUUID returns an OptionalUUID set to id.
func SomeUUID(id uuid.UUID) OptionalUUID {
	return OptionalUUID{Set: true, Value: &id}
}

func (o *OptionalUUID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       int64      `json:"price"`
	CategoryID  *uuid.UUID `json:"category_id"`
	AuthorID    uuid.UUID  `json:"author_id"`
	LikesCount  int64      `json:"likes_count"`
	RatingAvg   float64    `json:"rating_avg"`
	RatingCount int64      `json:"rating_count"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
}

// ProductQuery selects a page of products. An empty Title matches everything.
type ProductQuery struct {
	Title  string
	Limit  int32
	Offset int32
}

// CategoryCreateDto represents the data transfer object for creating a new category.
type CategoryCreateDto struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CategoryDto represents the data transfer object for a category.
type CategoryDto struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CommentCreateDto represents the data transfer object for creating a new comment.
type CommentCreateDto struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Text      string    `json:"text"       validate:"required,max=5000"`
}

// CommentUpdateDto carries the new comment text.
type CommentUpdateDto struct {
	Text string `json:"text" validate:"required,max=5000"`
}

// CommentPatchDto carries a partial comment update.
type CommentPatchDto struct {
	Text *string `json:"text" validate:"omitnil,min=1,max=5000"`
}

// CommentDto represents the data transfer object for a comment.
type CommentDto struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	AuthorID  uuid.UUID `json:"author_id"`
	ProductID uuid.UUID `json:"product_id"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toProductDto(v *store.ProductView) *ProductDto {
	return &ProductDto{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Price:       v.Price,
		CategoryID:  v.CategoryID,
		AuthorID:    v.AuthorID,
		LikesCount:  v.LikesCount,
		RatingAvg:   v.RatingAvg,
		RatingCount: v.RatingCount,
		CreatedAt:   formatTime(v.CreatedAt),
		UpdatedAt:   formatTime(v.UpdatedAt),
	}
}

func toCategoryDto(c *db.Category) *CategoryDto {
	return &CategoryDto{ID: c.ID, Name: c.Name}
}

func toCommentDto(c *db.Comment) *CommentDto {
	return &CommentDto{
		ID:        c.ID,
		Text:      c.Text,
		AuthorID:  c.AuthorID,
		ProductID: c.ProductID,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

func toUserDto(u *db.User) *UserDto {
	dto := &UserDto{ID: u.ID, Username: u.Username}
	if u.Email != nil {
		dto.Email = *u.Email
	}
	return dto
}
