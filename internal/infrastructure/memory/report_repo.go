package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/tiles-api/internal/domain/repository"
)

var _ repository.StockReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas sobre el estado confirmado del store.
type ReportRepo struct{ s *Store }

// Reports devuelve el repositorio de reportes de inventario.
func (s *Store) Reports() *ReportRepo { return &ReportRepo{s: s} }

func (r *ReportRepo) ListBelow(ctx context.Context, threshold int64, locationID string, limit int) ([]repository.LowStockItem, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]repository.LowStockItem, 0)
	for _, rec := range s.inventory {
		if rec.Quantity >= threshold || (locationID != "" && rec.LocationID != locationID) {
			continue
		}
		p := s.products[rec.ProductID]
		l := s.locations[rec.LocationID]
		items = append(items, repository.LowStockItem{
			RecordID:     rec.ID,
			ProductID:    rec.ProductID,
			ProductCode:  p.Code,
			ProductName:  p.Name,
			LocationID:   rec.LocationID,
			LocationName: l.Name,
			Quantity:     rec.Quantity,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Quantity != b.Quantity {
			return a.Quantity < b.Quantity
		}
		if a.ProductCode != b.ProductCode {
			return a.ProductCode < b.ProductCode
		}
		return a.LocationName < b.LocationName
	})
	return page(items, limit, 0), nil
}

func (r *ReportRepo) TotalsByLocation(ctx context.Context) ([]repository.StockTotal, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := make(map[string]*repository.StockTotal, len(s.locations))
	totals := make([]*repository.StockTotal, 0, len(s.locations))
	for _, l := range s.locations {
		t := &repository.StockTotal{Key: l.ID, Name: l.Name}
		byID[l.ID] = t
		totals = append(totals, t)
	}
	for _, rec := range s.inventory {
		if t, ok := byID[rec.LocationID]; ok {
			t.Quantity += rec.Quantity
			t.Records++
		}
	}
	sort.Slice(totals, func(i, j int) bool {
		a, b := strings.ToLower(totals[i].Name), strings.ToLower(totals[j].Name)
		if a != b {
			return a < b
		}
		return totals[i].Key < totals[j].Key
	})
	return derefTotals(totals), nil
}

func (r *ReportRepo) TotalsBySize(ctx context.Context) ([]repository.StockTotal, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	bySize := make(map[string]*repository.StockTotal)
	sizeOf := make(map[string]string, len(s.products))
	for _, p := range s.products {
		size := s.categories[p.CategoryID].Size
		sizeOf[p.ID] = size
		if _, ok := bySize[size]; !ok {
			bySize[size] = &repository.StockTotal{Key: size, Name: size}
		}
	}
	for _, rec := range s.inventory {
		size, ok := sizeOf[rec.ProductID]
		if !ok {
			continue
		}
		bySize[size].Quantity += rec.Quantity
		bySize[size].Records++
	}
	totals := make([]*repository.StockTotal, 0, len(bySize))
	for _, t := range bySize {
		totals = append(totals, t)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Key < totals[j].Key })
	return derefTotals(totals), nil
}

func derefTotals(in []*repository.StockTotal) []repository.StockTotal {
	out := make([]repository.StockTotal, 0, len(in))
	for _, t := range in {
		out = append(out, *t)
	}
	return out
}
