package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tiles-api/internal/domain/entity"
	"github.com/jhoicas/tiles-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de ubicaciones (bodegas y tiendas).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const locationColumns = `id, name, location_type, address, contact_number`

func scanLocation(row pgx.Row) (*entity.Location, error) {
	var l entity.Location
	if err := row.Scan(&l.ID, &l.Name, &l.Type, &l.Address, &l.ContactNumber); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO locations (`+locationColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		l.ID, l.Name, l.Type, l.Address, l.ContactNumber)
	if err != nil {
		return writeError("insert location", err)
	}
	return nil
}

func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	l, err := scanLocation(r.q.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id))
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return l, nil
}

func (r *LocationRepo) Update(ctx context.Context, l *entity.Location) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE locations SET name = $2, location_type = $3, address = $4, contact_number = $5 WHERE id = $1`,
		l.ID, l.Name, l.Type, l.Address, l.ContactNumber)
	if err != nil {
		return writeError("update location", err)
	}
	return affectedOrNotFound(tag)
}

// List filtra por tipo si locationType no es vacío.
func (r *LocationRepo) List(ctx context.Context, locationType string, limit, offset int) ([]*entity.Location, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+locationColumns+` FROM locations
		WHERE ($1::text = '' OR location_type = $1)
		ORDER BY lower(name), id
		LIMIT $2 OFFSET $3`,
		locationType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func (r *LocationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return deleteError("delete location", err)
	}
	return affectedOrNotFound(tag)
}
