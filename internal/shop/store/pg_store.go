package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	shoperrors "github.com/zhiidetopchubaeva/shop/internal/shop/errors"
	"github.com/zhiidetopchubaeva/shop/internal/shop/store/db"
)

const defaultMaxAttempts = 3

// PgStore implements the shop stores using PostgreSQL as the data store.
type PgStore struct {
	db          *pgxpool.Pool
	q           *db.Queries
	maxAttempts uint
	backoff     time.Duration
}

// Option configures a PgStore.
type Option func(*PgStore)

// WithMaxAttempts bounds how often a transaction that lost a uniqueness race is re-run.
func WithMaxAttempts(n uint) Option {
	return func(p *PgStore) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// WithBackoff sets the pause before the first re-run. It doubles on every further attempt.
func WithBackoff(d time.Duration) Option {
	return func(p *PgStore) {
		if d > 0 {
			p.backoff = d
		}
	}
}

// NewPgStore creates a new instance of PgStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool, opts ...Option) *PgStore {
	p := &PgStore{
		db:          dbp,
		q:           db.New(dbp),
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ping checks that the database is reachable.
func (p *PgStore) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

func (p *PgStore) withTransaction(ctx context.Context, fn func(qtx *db.Queries) error) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return shoperrors.ErrTransactionBegin
	}
	qtx := p.q.WithTx(tx)

	err = fn(qtx)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return shoperrors.ErrTransactionRollback
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return shoperrors.ErrConstraintViolation
		}
		return shoperrors.ErrTransactionCommit
	}

	return nil
}

// withRetry runs fn in a transaction and re-runs the whole transaction when it
// fails with ErrConstraintViolation. A re-run observes the row the winner committed.
func (p *PgStore) withRetry(ctx context.Context, fn func(qtx *db.Queries) error) error {
	var err error
	backoff := p.backoff
	for attempt := uint(1); attempt <= p.maxAttempts; attempt++ {
		err = p.withTransaction(ctx, fn)
		if !errors.Is(err, shoperrors.ErrConstraintViolation) {
			return err
		}
		if attempt == p.maxAttempts {
			break
		}
		if backoff > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		} else if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
	return fmt.Errorf("gave up after %d attempts: %w", p.maxAttempts, err)
}

func asPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func isUniqueViolation(err error) bool {
	pgErr, ok := asPgError(err)
	return ok && pgErr.Code == pgerrcode.UniqueViolation
}

// foreignKeyTarget maps a foreign key violation to the not-found error of the missing row.
func foreignKeyTarget(err error) (error, bool) {
	pgErr, ok := asPgError(err)
	if !ok || pgErr.Code != pgerrcode.ForeignKeyViolation {
		return nil, false
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "product_id"):
		return shoperrors.ErrProductNotFound, true
	case strings.Contains(pgErr.ConstraintName, "category_id"):
		return shoperrors.ErrCategoryNotFound, true
	default:
		return shoperrors.ErrUserNotFound, true
	}
}
