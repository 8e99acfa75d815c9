package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/tiles-api/internal/domain/repository"
)

var _ repository.StockReportRepository = (*StockReportRepo)(nil)

// StockReportRepo consultas agregadas de inventario sobre PostgreSQL.
type StockReportRepo struct {
	q Querier
}

// NewStockReportRepository construye el adaptador de reportes.
func NewStockReportRepository(q Querier) *StockReportRepo {
	return &StockReportRepo{q: q}
}

// ListBelow devuelve los registros con cantidad menor que threshold, menor cantidad primero.
// Si locationID es vacío considera todas las ubicaciones.
func (r *StockReportRepo) ListBelow(ctx context.Context, threshold int64, locationID string, limit int) ([]repository.LowStockItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT
			i.id,
			p.id,
			p.product_code,
			p.name,
			l.id,
			l.name,
			i.quantity
		FROM inventory i
		JOIN products  p ON p.id = i.product_id
		JOIN locations l ON l.id = i.location_id
		WHERE i.quantity < $1
		  AND ($2::text = '' OR i.location_id::text = $2)
		ORDER BY i.quantity, p.product_code, l.name
		LIMIT $3`,
		threshold, locationID, limit)
	if err != nil {
		return nil, listError("list low stock", err)
	}
	defer rows.Close()

	var items []repository.LowStockItem
	for rows.Next() {
		var it repository.LowStockItem
		if err := rows.Scan(&it.RecordID, &it.ProductID, &it.ProductCode, &it.ProductName,
			&it.LocationID, &it.LocationName, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, listError("list low stock", err)
	}
	return items, nil
}

func (r *StockReportRepo) TotalsByLocation(ctx context.Context) ([]repository.StockTotal, error) {
	return r.totals(ctx, "stock totals by location", `
		SELECT
			l.id,
			l.name,
			COALESCE(SUM(i.quantity), 0) AS quantity,
			COUNT(i.id)                  AS records
		FROM locations l
		LEFT JOIN inventory i ON i.location_id = l.id
		GROUP BY l.id, l.name
		ORDER BY lower(l.name), l.id`)
}

func (r *StockReportRepo) TotalsBySize(ctx context.Context) ([]repository.StockTotal, error) {
	return r.totals(ctx, "stock totals by size", `
		SELECT
			c.size,
			c.size,
			COALESCE(SUM(i.quantity), 0) AS quantity,
			COUNT(i.id)                  AS records
		FROM tile_categories c
		JOIN products p       ON p.category_id = c.id
		LEFT JOIN inventory i ON i.product_id = p.id
		GROUP BY c.size
		ORDER BY c.size`)
}

func (r *StockReportRepo) totals(ctx context.Context, op, query string) ([]repository.StockTotal, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var totals []repository.StockTotal
	for rows.Next() {
		var t repository.StockTotal
		if err := rows.Scan(&t.Key, &t.Name, &t.Quantity, &t.Records); err != nil {
			return nil, fmt.Errorf("scan %s: %w", op, err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return totals, nil
}
