package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tiles-api/internal/domain/entity"
	"github.com/jhoicas/tiles-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// TxQuerier es un Querier que además puede abrir una transacción (pool) o un savepoint (tx).
type TxQuerier interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// SaleRepo implementación de SaleRepository sobre PostgreSQL (tablas sales y sale_items).
type SaleRepo struct {
	db TxQuerier
}

// NewSaleRepository construye el adaptador de ventas.
func NewSaleRepository(db TxQuerier) *SaleRepo {
	return &SaleRepo{db: db}
}

const saleColumns = `id, invoice_number, location_id, customer_name, customer_phone, customer_address,
	sale_date, payment_method, total_amount`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.InvoiceNumber, &s.LocationID, &s.CustomerName, &s.CustomerPhone,
		&s.CustomerAddress, &s.SaleDate, &s.PaymentMethod, &s.TotalAmount)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta cabecera y líneas en una sola transacción.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO sales (`+saleColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			sale.ID, sale.InvoiceNumber, sale.LocationID, sale.CustomerName, sale.CustomerPhone,
			sale.CustomerAddress, sale.SaleDate, sale.PaymentMethod, sale.TotalAmount)
		if err != nil {
			return writeError("insert sale", err)
		}
		if len(sale.Items) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for _, it := range sale.Items {
			batch.Queue(`
				INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, total_price)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				it.ID, sale.ID, it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice)
		}
		br := tx.SendBatch(ctx, batch)
		for range sale.Items {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return writeError("insert sale item", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("insert sale items: %w", err)
		}
		return nil
	})
}

// GetByID devuelve la venta con sus líneas.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := scanSale(r.db.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Sale{sale}); err != nil {
		return nil, err
	}
	return sale, nil
}

// List lista ventas (más recientes primero), opcionalmente de una ubicación, con sus líneas.
func (r *SaleRepo) List(ctx context.Context, locationID string, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales`
	args := []any{}
	if locationID != "" {
		args = append(args, locationID)
		query += ` WHERE location_id = $1`
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY sale_date DESC, id LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, listError("list sales", err)
	}
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, listError("list sales", err)
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SaleRepo) loadItems(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]string, len(sales))
	byID := make(map[string]*entity.Sale, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
		byID[s.ID] = s
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, sale_id, product_id, quantity, unit_price, total_price
		FROM sale_items WHERE sale_id = ANY($1::uuid[])
		ORDER BY sale_id, id`, ids)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		if s, ok := byID[it.SaleID]; ok {
			s.Items = append(s.Items, it)
		}
	}
	return rows.Err()
}

// Delete elimina la venta; las líneas caen por ON DELETE CASCADE.
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return deleteError("delete sale", err)
	}
	return affectedOrNotFound(tag)
}
