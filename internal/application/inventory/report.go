package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/tiles-api/internal/application/dto"
	"github.com/jhoicas/tiles-api/internal/domain"
	"github.com/jhoicas/tiles-api/internal/domain/repository"
)

// DefaultLowStockThreshold cantidad por debajo de la cual un registro se considera bajo stock.
const DefaultLowStockThreshold int64 = 10

const (
	summaryLowStockItems = 5
	summaryMovements     = 5
)

// StockReport arma el tablero de inventario: bajo stock por ubicación, totales por ubicación
// y por formato, y los últimos traslados.
type StockReport struct {
	reportRepo   repository.StockReportRepository
	movementRepo repository.StockMovementRepository
	threshold    int64
}

// NewStockReport construye el reporte. Un umbral <= 0 usa DefaultLowStockThreshold.
func NewStockReport(
	reportRepo repository.StockReportRepository,
	movementRepo repository.StockMovementRepository,
	threshold int64,
) *StockReport {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return &StockReport{
		reportRepo:   reportRepo,
		movementRepo: movementRepo,
		threshold:    threshold,
	}
}

// Threshold devuelve el umbral configurado.
func (r *StockReport) Threshold() int64 { return r.threshold }

// LowStock devuelve los registros con cantidad < threshold (0 usa el umbral configurado),
// menor cantidad primero. locationID vacío considera todas las ubicaciones.
func (r *StockReport) LowStock(ctx context.Context, locationID string, threshold int64, limit int) (*dto.LowStockListResponse, error) {
	if threshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	if threshold == 0 {
		threshold = r.threshold
	}
	page := dto.PageRequest{Limit: limit}
	page.DefaultPage()

	items, err := r.reportRepo.ListBelow(ctx, threshold, strings.TrimSpace(locationID), page.Limit)
	if err != nil {
		return nil, domain.NewStorageError("list low stock", err)
	}
	return &dto.LowStockListResponse{Threshold: threshold, Items: toLowStock(items)}, nil
}

// Summary devuelve el tablero completo con el umbral configurado.
func (r *StockReport) Summary(ctx context.Context) (*dto.StockSummaryResponse, error) {
	byLocation, err := r.reportRepo.TotalsByLocation(ctx)
	if err != nil {
		return nil, domain.NewStorageError("stock totals by location", err)
	}
	bySize, err := r.reportRepo.TotalsBySize(ctx)
	if err != nil {
		return nil, domain.NewStorageError("stock totals by size", err)
	}
	low, err := r.reportRepo.ListBelow(ctx, r.threshold, "", summaryLowStockItems)
	if err != nil {
		return nil, domain.NewStorageError("list low stock", err)
	}
	movements, err := r.movementRepo.List(ctx, repository.MovementFilter{}, summaryMovements, 0)
	if err != nil {
		return nil, domain.NewStorageError("list recent movements", err)
	}

	out := &dto.StockSummaryResponse{
		Threshold:       r.threshold,
		ByLocation:      toStockTotals(byLocation),
		BySize:          toStockTotals(bySize),
		LowStock:        toLowStock(low),
		RecentMovements: make([]dto.MovementResponse, 0, len(movements)),
	}
	// Todo registro tiene ubicación: la suma por ubicación es el total general.
	for _, t := range byLocation {
		out.TotalStock += t.Quantity
	}
	for _, m := range movements {
		out.RecentMovements = append(out.RecentMovements, dto.MovementResponse{
			ID:             m.ID,
			ProductID:      m.ProductID,
			FromLocationID: m.FromLocationID,
			ToLocationID:   m.ToLocationID,
			Quantity:       m.Quantity,
			MovementDate:   m.MovementDate,
			Notes:          m.Notes,
		})
	}
	return out, nil
}

func toLowStock(items []repository.LowStockItem) []dto.LowStockResponse {
	out := make([]dto.LowStockResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LowStockResponse{
			RecordID:     it.RecordID,
			ProductID:    it.ProductID,
			ProductCode:  it.ProductCode,
			ProductName:  it.ProductName,
			LocationID:   it.LocationID,
			LocationName: it.LocationName,
			Quantity:     it.Quantity,
		})
	}
	return out
}

func toStockTotals(totals []repository.StockTotal) []dto.StockTotalResponse {
	out := make([]dto.StockTotalResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.StockTotalResponse{Key: t.Key, Name: t.Name, Quantity: t.Quantity, Records: t.Records})
	}
	return out
}
