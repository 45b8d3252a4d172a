package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	shoperrors "github.com/zhiidetopchubaeva/shop/internal/shop/errors"
	"github.com/zhiidetopchubaeva/shop/internal/shop/store"
	"github.com/zhiidetopchubaeva/shop/internal/shop/store/db"
	"github.com/zhiidetopchubaeva/shop/pkg/messaging"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type pair struct {
	user    uuid.UUID
	product uuid.UUID
}

// memStore is an in-memory store with the same per-pair atomicity as PgStore.
type memStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]db.User
	products map[uuid.UUID]db.Product
	comments map[uuid.UUID]db.Comment
	likes    map[pair]struct{}
	ratings  map[pair]int32
	calls    int
	err      error
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[uuid.UUID]db.User{},
		products: map[uuid.UUID]db.Product{},
		comments: map[uuid.UUID]db.Comment{},
		likes:    map[pair]struct{}{},
		ratings:  map[pair]int32{},
	}
}

func (m *memStore) addProduct(author uuid.UUID) db.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := db.Product{ID: uuid.New(), Title: "Phone", Price: 100, AuthorID: author, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	m.products[p.ID] = p
	return p
}

func (m *memStore) ratingRows(user, product uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ratings[pair{user, product}]; ok {
		return 1
	}
	return 0
}

func (m *memStore) liked(user, product uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.likes[pair{user, product}]
	return ok
}

func (m *memStore) ProductExists(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.products[id]
	return ok, nil
}

func (m *memStore) ToggleLike(_ context.Context, userID, productID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if _, ok := m.products[productID]; !ok {
		return false, shoperrors.ErrProductNotFound
	}
	key := pair{userID, productID}
	if _, ok := m.likes[key]; ok {
		delete(m.likes, key)
		return false, nil
	}
	m.likes[key] = struct{}{}
	return true, nil
}

func (m *memStore) UpsertRating(_ context.Context, userID, productID uuid.UUID, value int32) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if _, ok := m.products[productID]; !ok {
		return false, shoperrors.ErrProductNotFound
	}
	key := pair{userID, productID}
	_, existed := m.ratings[key]
	m.ratings[key] = value
	return !existed, nil
}

func (m *memStore) FindProductByID(_ context.Context, id uuid.UUID) (*db.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, shoperrors.ErrProductNotFound
	}
	return &p, nil
}

func (m *memStore) FindProductView(ctx context.Context, id uuid.UUID) (*store.ProductView, error) {
	p, err := m.FindProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	view := &store.ProductView{Product: *p}
	var sum int32
	for k, v := range m.ratings {
		if k.product == id {
			view.RatingCount++
			sum += v
		}
	}
	if view.RatingCount > 0 {
		view.RatingAvg = float64(sum) / float64(view.RatingCount)
	}
	for k := range m.likes {
		if k.product == id {
			view.LikesCount++
		}
	}
	return view, nil
}

func (m *memStore) ListProducts(ctx context.Context, _ store.ProductFilter) ([]store.ProductView, error) {
	m.mu.Lock()
	ids := make([]uuid.UUID, 0, len(m.products))
	for id := range m.products {
		ids = append(ids, id)
	}
	m.mu.Unlock()
	views := make([]store.ProductView, 0, len(ids))
	for _, id := range ids {
		v, err := m.FindProductView(ctx, id)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

func (m *memStore) CreateProduct(_ context.Context, params db.CreateProductParams) (*db.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	p := db.Product{
		ID:          uuid.New(),
		Title:       params.Title,
		Description: params.Description,
		Price:       params.Price,
		CategoryID:  params.CategoryID,
		AuthorID:    params.AuthorID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	m.products[p.ID] = p
	return &p, nil
}

func (m *memStore) UpdateProduct(_ context.Context, params db.UpdateProductParams) (*db.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	p, ok := m.products[params.ID]
	if !ok {
		return nil, shoperrors.ErrProductNotFound
	}
	p.Title, p.Description, p.Price, p.CategoryID = params.Title, params.Description, params.Price, params.CategoryID
	m.products[p.ID] = p
	return &p, nil
}

func (m *memStore) DeleteProduct(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if _, ok := m.products[id]; !ok {
		return shoperrors.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *memStore) CreateComment(_ context.Context, params db.CreateCommentParams) (*db.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if _, ok := m.products[params.ProductID]; !ok {
		return nil, shoperrors.ErrProductNotFound
	}
	c := db.Comment{ID: uuid.New(), Text: params.Text, AuthorID: params.AuthorID, ProductID: params.ProductID}
	m.comments[c.ID] = c
	return &c, nil
}

func (m *memStore) FindCommentByID(_ context.Context, id uuid.UUID) (*db.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return nil, shoperrors.ErrCommentNotFound
	}
	return &c, nil
}

func (m *memStore) UpdateComment(_ context.Context, id uuid.UUID, text string) (*db.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	c, ok := m.comments[id]
	if !ok {
		return nil, shoperrors.ErrCommentNotFound
	}
	c.Text = text
	m.comments[id] = c
	return &c, nil
}

func (m *memStore) DeleteComment(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if _, ok := m.comments[id]; !ok {
		return shoperrors.ErrCommentNotFound
	}
	delete(m.comments, id)
	return nil
}

// MockPublisher is a mock implementation of the messaging.Publisher interface.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event messaging.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
