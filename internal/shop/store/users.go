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

func (p *PgStore) CreateUser(ctx context.Context, params db.CreateUserParams) (*db.User, error) {
	user, err := p.q.CreateUser(ctx, params)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, shoperrors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func (p *PgStore) FindUserByID(ctx context.Context, id uuid.UUID) (*db.User, error) {
	user, err := p.q.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shoperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return &user, nil
}

func (p *PgStore) FindUserByUsername(ctx context.Context, username string) (*db.User, error) {
	user, err := p.q.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shoperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return &user, nil
}

// EnsureUser is a single upsert statement, so concurrent first requests of the
// same user converge on one row.
func (p *PgStore) EnsureUser(ctx context.Context, id uuid.UUID, username string) (*db.User, error) {
	user, err := p.q.EnsureUser(ctx, db.EnsureUserParams{ID: id, Username: username})
	if err != nil {
		if isUniqueViolation(err) {
			// same username held by a different id
			return nil, shoperrors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to ensure user: %w", err)
	}
	return &user, nil
}
