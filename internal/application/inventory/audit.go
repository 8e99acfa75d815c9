package inventory

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/tiles-api/internal/domain"
	"github.com/jhoicas/tiles-api/internal/domain/entity"
	"github.com/jhoicas/tiles-api/internal/domain/repository"
)

// StockAudit revisa los registros de inventario con cantidad negativa.
// Con AllowNegative el libro los permite; la auditoría los deja en el log para que alguien los concilie.
type StockAudit struct {
	inventoryRepo repository.InventoryRepository
	log           zerolog.Logger
}

// NewStockAudit construye la auditoría.
func NewStockAudit(inventoryRepo repository.InventoryRepository, log zerolog.Logger) *StockAudit {
	return &StockAudit{inventoryRepo: inventoryRepo, log: log}
}

// Run devuelve los registros negativos y emite un warning por cada uno.
func (a *StockAudit) Run(ctx context.Context) ([]*entity.InventoryRecord, error) {
	records, err := a.inventoryRepo.ListNegative(ctx)
	if err != nil {
		return nil, domain.NewStorageError("list negative inventory", err)
	}
	for _, r := range records {
		a.log.Warn().
			Str("record_id", r.ID).
			Str("product_id", r.ProductID).
			Str("location_id", r.LocationID).
			Int64("quantity", r.Quantity).
			Msg("inventario negativo")
	}
	a.log.Info().Int("negative_records", len(records)).Msg("auditoría de stock completada")
	return records, nil
}
