package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/tiles-api/internal/domain/entity"
	"github.com/jhoicas/tiles-api/internal/domain/repository"
)

var (
	_ repository.BrandRepository    = (*BrandRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
)

// BrandRepo implementación de BrandRepository sobre PostgreSQL.
type BrandRepo struct {
	q Querier
}

// NewBrandRepository construye el adaptador de marcas. Pasar pool o tx (Querier).
func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{q: q}
}

func (r *BrandRepo) Create(ctx context.Context, b *entity.Brand) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO brands (id, name, description) VALUES ($1, $2, $3)`,
		b.ID, b.Name, b.Description)
	if err != nil {
		return writeError("insert brand", err)
	}
	return nil
}

func (r *BrandRepo) GetByID(ctx context.Context, id string) (*entity.Brand, error) {
	var b entity.Brand
	err := r.q.QueryRow(ctx, `SELECT id, name, description FROM brands WHERE id = $1`, id).
		Scan(&b.ID, &b.Name, &b.Description)
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

func (r *BrandRepo) Update(ctx context.Context, b *entity.Brand) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE brands SET name = $2, description = $3 WHERE id = $1`,
		b.ID, b.Name, b.Description)
	if err != nil {
		return writeError("update brand", err)
	}
	return affectedOrNotFound(tag)
}

func (r *BrandRepo) List(ctx context.Context, limit, offset int) ([]*entity.Brand, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, description FROM brands ORDER BY lower(name), id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var list []*entity.Brand
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Description); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

func (r *BrandRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return deleteError("delete brand", err)
	}
	return affectedOrNotFound(tag)
}

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL (tabla tile_categories).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO tile_categories (id, name, size, description) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.Size, c.Description)
	if err != nil {
		return writeError("insert category", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx,
		`SELECT id, name, size, description FROM tile_categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Size, &c.Description)
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE tile_categories SET name = $2, size = $3, description = $4 WHERE id = $1`,
		c.ID, c.Name, c.Size, c.Description)
	if err != nil {
		return writeError("update category", err)
	}
	return affectedOrNotFound(tag)
}

func (r *CategoryRepo) List(ctx context.Context, limit, offset int) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, size, description FROM tile_categories ORDER BY lower(name), id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Size, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM tile_categories WHERE id = $1`, id)
	if err != nil {
		return deleteError("delete category", err)
	}
	return affectedOrNotFound(tag)
}
