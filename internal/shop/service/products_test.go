package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	shoperrors "github.com/zhiidetopchubaeva/shop/internal/shop/errors"
	"github.com/zhiidetopchubaeva/shop/pkg/auth"
)

func TestProducts_Create(t *testing.T) {
	alice := auth.Principal{UserID: uuid.New(), Username: "alice"}
	testCases := []struct {
		name        string
		principal   auth.Principal
		expectedErr error
	}{
		{name: "Success - author is the principal", principal: alice},
		{name: "Error - anonymous", principal: auth.Anonymous(), expectedErr: shoperrors.ErrUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			repo := newMemStore()
			s := NewProductService(repo)
			// when
			created, err := s.Create(context.Background(), tc.principal, ProductCreateDto{Title: "Phone", Price: 100})
			// then
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, created)
				assert.Empty(t, repo.products)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.principal.UserID, created.AuthorID)
			assert.Equal(t, "Phone", created.Title)
			assert.Len(t, repo.products, 1)
		})
	}
}

func TestProducts_UpdateAndDelete_Authorization(t *testing.T) {
	alice := auth.Principal{UserID: uuid.New(), Username: "alice"}
	bob := auth.Principal{UserID: uuid.New(), Username: "bob"}

	testCases := []struct {
		name        string
		principal   auth.Principal
		knownID     bool
		expectedErr error
	}{
		{name: "Author", principal: alice, knownID: true},
		{name: "Non-author", principal: bob, knownID: true, expectedErr: shoperrors.ErrForbidden},
		{name: "Anonymous", principal: auth.Anonymous(), knownID: true, expectedErr: shoperrors.ErrUnauthorized},
		{name: "Anonymous on unknown product", principal: auth.Anonymous(), knownID: false, expectedErr: shoperrors.ErrUnauthorized},
		{name: "Unknown product", principal: alice, knownID: false, expectedErr: shoperrors.ErrProductNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			repo := newMemStore()
			product := repo.addProduct(alice.UserID)
			id := uuid.New()
			if tc.knownID {
				id = product.ID
			}
			s := NewProductService(repo)
			title := "Renamed"

			// when
			patched, patchErr := s.Patch(context.Background(), tc.principal, id, ProductPatchDto{Title: &title})
			deleteErr := s.Delete(context.Background(), tc.principal, id)

			// then
			if tc.expectedErr != nil {
				assert.ErrorIs(t, patchErr, tc.expectedErr)
				assert.ErrorIs(t, deleteErr, tc.expectedErr)
				assert.Equal(t, "Phone", repo.products[product.ID].Title)
				return
			}
			require.NoError(t, patchErr)
			require.NoError(t, deleteErr)
			assert.Equal(t, "Renamed", patched.Title)
			assert.Equal(t, int64(100), patched.Price, "absent fields are left unchanged")
			assert.Empty(t, repo.products)
		})
	}
}

func TestProducts_Replace(t *testing.T) {
	// given
	repo := newMemStore()
	alice := auth.Principal{UserID: uuid.New(), Username: "alice"}
	product := repo.addProduct(alice.UserID)
	s := NewProductService(repo)
	// when
	replaced, err := s.Replace(context.Background(), alice, product.ID, ProductCreateDto{Title: "Tablet", Description: "new", Price: 7})
	// then
	require.NoError(t, err)
	assert.Equal(t, "Tablet", replaced.Title)
	assert.Equal(t, "new", replaced.Description)
	assert.Equal(t, int64(7), replaced.Price)
}

func TestProducts_FindByID_CarriesAggregates(t *testing.T) {
	// given
	repo := newMemStore()
	product := repo.addProduct(uuid.New())
	u1, u2 := uuid.New(), uuid.New()
	repo.likes[pair{u1, product.ID}] = struct{}{}
	repo.ratings[pair{u1, product.ID}] = 3
	repo.ratings[pair{u2, product.ID}] = 4
	s := NewProductService(repo)
	// when
	found, err := s.FindByID(context.Background(), product.ID)
	// then
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.LikesCount)
	assert.Equal(t, int64(2), found.RatingCount)
	assert.InDelta(t, 3.5, found.RatingAvg, 0.001)

	_, err = s.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shoperrors.ErrProductNotFound)
}

func TestProducts_Patch_Category(t *testing.T) {
	alice := auth.Principal{UserID: uuid.New(), Username: "alice"}
	current := uuid.New()
	other := uuid.New()

	testCases := []struct {
		name     string
		category OptionalUUID
		expected *uuid.UUID
	}{
		{name: "Absent key keeps category", category: OptionalUUID{}, expected: &current},
		{name: "Null clears category", category: OptionalUUID{Set: true}, expected: nil},
		{name: "Value replaces category", category: SomeUUID(other), expected: &other},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			repo := newMemStore()
			product := repo.addProduct(alice.UserID)
			product.CategoryID = &current
			repo.products[product.ID] = product
			s := NewProductService(repo)

			// when
			_, err := s.Patch(context.Background(), alice, product.ID, ProductPatchDto{CategoryID: tc.category})

			// then
			require.NoError(t, err)
			assert.Equal(t, tc.expected, repo.products[product.ID].CategoryID)
			assert.Equal(t, "Phone", repo.products[product.ID].Title)
		})
	}
}
