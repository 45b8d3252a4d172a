package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/zhiidetopchubaeva/shop/internal/shop/service"
	"github.com/zhiidetopchubaeva/shop/pkg/auth"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// tokenResolver maps fixed bearer tokens onto principals.
type tokenResolver map[string]auth.Principal

func (t tokenResolver) Resolve(_ context.Context, token string) (auth.Principal, error) {
	p, ok := t[token]
	if !ok {
		return auth.Principal{}, errors.New("unknown token")
	}
	return p, nil
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, account service.RegisterDto) (*service.UserDto, error) {
	args := m.Called(ctx, account)
	user, _ := args.Get(0).(*service.UserDto)
	return user, args.Error(1)
}

func (m *MockAccountService) Login(ctx context.Context, credentials service.LoginDto) (*service.TokenDto, error) {
	args := m.Called(ctx, credentials)
	token, _ := args.Get(0).(*service.TokenDto)
	return token, args.Error(1)
}

func (m *MockAccountService) Resolve(ctx context.Context, token string) (auth.Principal, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(auth.Principal), args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, query service.ProductQuery) ([]service.ProductDto, error) {
	args := m.Called(ctx, query)
	list, _ := args.Get(0).([]service.ProductDto)
	return list, args.Error(1)
}

func (m *MockProductService) FindByID(ctx context.Context, id uuid.UUID) (*service.ProductDto, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*service.ProductDto)
	return p, args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, principal auth.Principal, product service.ProductCreateDto) (*service.ProductDto, error) {
	args := m.Called(ctx, principal, product)
	p, _ := args.Get(0).(*service.ProductDto)
	return p, args.Error(1)
}

func (m *MockProductService) Replace(ctx context.Context, principal auth.Principal, id uuid.UUID, product service.ProductCreateDto) (*service.ProductDto, error) {
	args := m.Called(ctx, principal, id, product)
	p, _ := args.Get(0).(*service.ProductDto)
	return p, args.Error(1)
}

func (m *MockProductService) Patch(ctx context.Context, principal auth.Principal, id uuid.UUID, patch service.ProductPatchDto) (*service.ProductDto, error) {
	args := m.Called(ctx, principal, id, patch)
	p, _ := args.Get(0).(*service.ProductDto)
	return p, args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, principal auth.Principal, id uuid.UUID) error {
	return m.Called(ctx, principal, id).Error(0)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) FindAll(ctx context.Context) ([]service.CategoryDto, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]service.CategoryDto)
	return list, args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, principal auth.Principal, category service.CategoryCreateDto) (*service.CategoryDto, error) {
	args := m.Called(ctx, principal, category)
	c, _ := args.Get(0).(*service.CategoryDto)
	return c, args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, principal auth.Principal, id uuid.UUID) error {
	return m.Called(ctx, principal, id).Error(0)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Create(ctx context.Context, principal auth.Principal, comment service.CommentCreateDto) (*service.CommentDto, error) {
	args := m.Called(ctx, principal, comment)
	c, _ := args.Get(0).(*service.CommentDto)
	return c, args.Error(1)
}

func (m *MockCommentService) Update(ctx context.Context, principal auth.Principal, id uuid.UUID, comment service.CommentUpdateDto) (*service.CommentDto, error) {
	args := m.Called(ctx, principal, id, comment)
	c, _ := args.Get(0).(*service.CommentDto)
	return c, args.Error(1)
}

func (m *MockCommentService) Patch(ctx context.Context, principal auth.Principal, id uuid.UUID, patch service.CommentPatchDto) (*service.CommentDto, error) {
	args := m.Called(ctx, principal, id, patch)
	c, _ := args.Get(0).(*service.CommentDto)
	return c, args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, principal auth.Principal, id uuid.UUID) error {
	return m.Called(ctx, principal, id).Error(0)
}

type MockInteractionService struct {
	mock.Mock
}

func (m *MockInteractionService) ToggleLike(ctx context.Context, principal auth.Principal, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, principal, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInteractionService) AddRating(ctx context.Context, principal auth.Principal, productID uuid.UUID, value string) (bool, error) {
	args := m.Called(ctx, principal, productID, value)
	return args.Bool(0), args.Error(1)
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}
