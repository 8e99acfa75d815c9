package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tiles-api/internal/domain/entity"
	"github.com/jhoicas/tiles-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de StockMovementRepository sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, product_id, from_location_id, to_location_id, quantity, movement_date, notes`

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(&m.ID, &m.ProductID, &m.FromLocationID, &m.ToLocationID, &m.Quantity, &m.MovementDate, &m.Notes)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create registra un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO stock_movements (`+movementColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.ProductID, m.FromLocationID, m.ToLocationID, m.Quantity, m.MovementDate, m.Notes)
	if err != nil {
		return writeError("insert stock movement", err)
	}
	return nil
}

func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.getOne(ctx, "get stock movement", `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id)
}

// GetForUpdate obtiene el movimiento y bloquea la fila; una segunda reversión espera y luego no lo encuentra.
func (r *StockMovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.getOne(ctx, "get stock movement for update",
		`SELECT `+movementColumns+` FROM stock_movements WHERE id = $1 FOR UPDATE`, id)
}

func (r *StockMovementRepo) getOne(ctx context.Context, op, query, id string) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// List lista movimientos (más recientes primero). LocationID coincide con origen o destino.
func (r *StockMovementRepo) List(ctx context.Context, filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
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
		conds = append(conds, fmt.Sprintf("(from_location_id = $%d OR to_location_id = $%d)", len(args), len(args)))
	}
	query := `SELECT ` + movementColumns + ` FROM stock_movements`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY movement_date DESC, id LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, listError("list stock movements", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, listError("list stock movements", err)
	}
	return list, nil
}

func (r *StockMovementRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE id = $1`, id)
	if err != nil {
		return deleteError("delete stock movement", err)
	}
	return affectedOrNotFound(tag)
}
