package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"
	"github.com/jackc/pgx/v5"
	shoperrors "github.com/zhiidetopchubaeva/shop/internal/shop/errors"
	"github.com/zhiidetopchubaeva/shop/internal/shop/store/db"
)

var productViewColumns = []string{
	"p.id", "p.title", "p.description", "p.price", "p.category_id", "p.author_id", "p.created_at", "p.updated_at",
	"(SELECT count(*) FROM likes l WHERE l.product_id = p.id) AS likes_count",
	"(SELECT coalesce(avg(r.value), 0)::float8 FROM ratings r WHERE r.product_id = p.id) AS rating_avg",
	"(SELECT count(*) FROM ratings r WHERE r.product_id = p.id) AS rating_count",
}

func (p *PgStore) FindProductByID(ctx context.Context, id uuid.UUID) (*db.Product, error) {
	product, err := p.q.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shoperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return &product, nil
}

func (p *PgStore) FindProductView(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	product, err := p.FindProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	stats, err := p.q.FindProductStats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product stats: %w", err)
	}
	return &ProductView{
		Product:     *product,
		LikesCount:  stats.LikesCount,
		RatingAvg:   stats.RatingAvg,
		RatingCount: stats.RatingCount,
	}, nil
}

// buildListQuery renders the product listing for the filter.
func buildListQuery(filter ProductFilter) (string, []any) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(productViewColumns...).From("products p")
	if filter.Title != "" {
		sb.Where(sb.ILike("p.title", "%"+escapeLike(filter.Title)+"%"))
	}
	sb.OrderBy("p.created_at DESC", "p.id")
	if filter.Limit > 0 {
		sb.Limit(int(filter.Limit))
	}
	if filter.Offset > 0 {
		sb.Offset(int(filter.Offset))
	}
	return sb.Build()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (p *PgStore) ListProducts(ctx context.Context, filter ProductFilter) ([]ProductView, error) {
	query, args := buildListQuery(filter)
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]ProductView, 0)
	for rows.Next() {
		var v ProductView
		if err := rows.Scan(
			&v.ID,
			&v.Title,
			&v.Description,
			&v.Price,
			&v.CategoryID,
			&v.AuthorID,
			&v.CreatedAt,
			&v.UpdatedAt,
			&v.LikesCount,
			&v.RatingAvg,
			&v.RatingCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (p *PgStore) ProductExists(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := p.q.ProductExists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return exists, nil
}

func (p *PgStore) CreateProduct(ctx context.Context, params db.CreateProductParams) (*db.Product, error) {
	product, err := p.q.CreateProduct(ctx, params)
	if err != nil {
		if target, ok := foreignKeyTarget(err); ok {
			return nil, target
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

func (p *PgStore) UpdateProduct(ctx context.Context, params db.UpdateProductParams) (*db.Product, error) {
	product, err := p.q.UpdateProduct(ctx, params)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shoperrors.ErrProductNotFound
		}
		if target, ok := foreignKeyTarget(err); ok {
			return nil, target
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &product, nil
}

func (p *PgStore) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	count, err := p.q.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if count == 0 {
		return shoperrors.ErrProductNotFound
	}
	return nil
}
