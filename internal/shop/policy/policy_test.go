package policy

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	shoperrors "github.com/zhiidetopchubaeva/shop/internal/shop/errors"
	"github.com/zhiidetopchubaeva/shop/pkg/auth"
)

func TestPolicy(t *testing.T) {
	alice := auth.Principal{UserID: uuid.New(), Username: "alice"}
	bob := auth.Principal{UserID: uuid.New(), Username: "bob"}
	anon := auth.Anonymous()

	testCases := []struct {
		name      string
		policy    Policy
		principal auth.Principal
		action    Action
		author    uuid.UUID
		expected  error
	}{
		{name: "Products - anonymous read", policy: Products, principal: anon, action: Read},
		{name: "Products - anonymous create", policy: Products, principal: anon, action: Create, expected: shoperrors.ErrUnauthorized},
		{name: "Products - authenticated create", policy: Products, principal: alice, action: Create},
		{name: "Products - author update", policy: Products, principal: alice, action: Update, author: alice.UserID},
		{name: "Products - non-author update", policy: Products, principal: bob, action: Update, author: alice.UserID, expected: shoperrors.ErrForbidden},
		{name: "Products - anonymous delete", policy: Products, principal: anon, action: Delete, author: alice.UserID, expected: shoperrors.ErrUnauthorized},
		{name: "Categories - anonymous read", policy: Categories, principal: anon, action: Read},
		{name: "Categories - anonymous delete", policy: Categories, principal: anon, action: Delete, expected: shoperrors.ErrUnauthorized},
		{name: "Categories - any user delete", policy: Categories, principal: bob, action: Delete, author: alice.UserID},
		{name: "Comments - anonymous read", policy: Comments, principal: anon, action: Read, expected: shoperrors.ErrUnauthorized},
		{name: "Comments - author delete", policy: Comments, principal: alice, action: Delete, author: alice.UserID},
		{name: "Comments - non-author update", policy: Comments, principal: bob, action: Update, author: alice.UserID, expected: shoperrors.ErrForbidden},
		{name: "Interactions - anonymous", policy: Interactions, principal: anon, action: Create, expected: shoperrors.ErrUnauthorized},
		{name: "Interactions - authenticated", policy: Interactions, principal: bob, action: Create},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			err := tc.policy.AuthorizeObject(tc.principal, tc.action, tc.author)
			// then
			if tc.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expected)
			}
		})
	}
}

func TestPolicy_AuthorizeSkipsObjectRules(t *testing.T) {
	// given
	bob := auth.Principal{UserID: uuid.New(), Username: "bob"}
	// when
	err := Products.Authorize(bob, Update)
	// then
	assert.NoError(t, err)
}

func TestRun(t *testing.T) {
	// given
	first := errors.New("first")
	var calls []int
	check := func(i int, err error) Check {
		return func() error {
			calls = append(calls, i)
			return err
		}
	}
	// when
	err := Run(check(1, nil), check(2, first), check(3, errors.New("third")))
	// then
	assert.ErrorIs(t, err, first)
	assert.Equal(t, []int{1, 2}, calls)
}
