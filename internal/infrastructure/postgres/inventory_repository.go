package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tiles-api/internal/domain/entity"
	"github.com/jhoicas/tiles-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
// Los métodos *ForUpdate solo bloquean dentro de una transacción.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario por ubicación.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id, product_id, location_id, quantity, last_updated`

func scanInventory(row pgx.Row) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	if err := row.Scan(&rec.ID, &rec.ProductID, &rec.LocationID, &rec.Quantity, &rec.LastUpdated); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create inserta un registro (stock inicial). (producto, ubicación) repetido -> ErrDuplicate.
func (r *InventoryRepo) Create(ctx context.Context, rec *entity.InventoryRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO inventory (id, product_id, location_id, quantity, last_updated)
		VALUES ($1, $2, $3, $4, now())
		RETURNING last_updated`,
		rec.ID, rec.ProductID, rec.LocationID, rec.Quantity).Scan(&rec.LastUpdated)
	if err != nil {
		return writeError("insert inventory", err)
	}
	return nil
}

func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	return r.getOne(ctx, "get inventory", `SELECT `+inventoryColumns+` FROM inventory WHERE id = $1`, id)
}

func (r *InventoryRepo) Get(ctx context.Context, productID, locationID string) (*entity.InventoryRecord, error) {
	return r.getOne(ctx, "get inventory",
		`SELECT `+inventoryColumns+` FROM inventory WHERE product_id = $1 AND location_id = $2`,
		productID, locationID)
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE).
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.InventoryRecord, error) {
	return r.getOne(ctx, "get inventory for update", `
		SELECT `+inventoryColumns+` FROM inventory
		WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`,
		productID, locationID)
}

// GetOrCreateForUpdate inserta el registro en 0 si falta (sin pisar uno concurrente) y luego lo bloquea.
func (r *InventoryRepo) GetOrCreateForUpdate(ctx context.Context, productID, locationID string) (*entity.InventoryRecord, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory (id, product_id, location_id, quantity, last_updated)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (product_id, location_id) DO NOTHING`,
		uuid.New().String(), productID, locationID)
	if err != nil {
		return nil, writeError("ensure inventory", err)
	}
	rec, err := r.GetForUpdate(ctx, productID, locationID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("ensure inventory: registro no visible tras insertar")
	}
	return rec, nil
}

func (r *InventoryRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.InventoryRecord, error) {
	rec, err := scanInventory(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rec, nil
}

// List lista registros (más recientes primero) con filtros opcionales.
func (r *InventoryRepo) List(ctx context.Context, filter repository.InventoryFilter, limit, offset int) ([]*entity.InventoryRecord, error) {
	var (
		conds []string
		args  []any
	)
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		conds = append(conds, fmt.Sprintf("product_id = $%d", len(args)))
	}
	if filter.LocationID != "" {
		args = append(args, filter.LocationID)
		conds = append(conds, fmt.Sprintf("location_id = $%d", len(args)))
	}
	query := `SELECT ` + inventoryColumns + ` FROM inventory`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY last_updated DESC, id LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	return r.list(ctx, "list inventory", query, args...)
}

// ListNegative lista los registros con cantidad < 0 (auditoría).
func (r *InventoryRepo) ListNegative(ctx context.Context) ([]*entity.InventoryRecord, error) {
	return r.list(ctx, "list negative inventory",
		`SELECT `+inventoryColumns+` FROM inventory WHERE quantity < 0 ORDER BY last_updated DESC, id`)
}

func (r *InventoryRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.InventoryRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, listError(op, err)
	}
	defer rows.Close()

	var list []*entity.InventoryRecord
	for rows.Next() {
		rec, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, listError(op, err)
	}
	return list, nil
}

// UpdateQuantity fija la cantidad y refresca last_updated.
func (r *InventoryRepo) UpdateQuantity(ctx context.Context, id string, quantity int64) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE inventory SET quantity = $2, last_updated = now() WHERE id = $1`,
		id, quantity)
	if err != nil {
		return fmt.Errorf("update inventory quantity: %w", err)
	}
	return affectedOrNotFound(tag)
}

func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return deleteError("delete inventory", err)
	}
	return affectedOrNotFound(tag)
}
