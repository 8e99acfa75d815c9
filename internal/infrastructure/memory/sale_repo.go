package memory

import (
	"context"

	"github.com/jhoicas/tiles-api/internal/domain"
	"github.com/jhoicas/tiles-api/internal/domain/entity"
	"github.com/jhoicas/tiles-api/internal/domain/repository"
)

// SaleRepo implementa repository.SaleRepository.
type SaleRepo struct{ s *Store }

func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, other := range r.s.sales {
		if other.InvoiceNumber == sale.InvoiceNumber {
			return domain.ErrDuplicate
		}
	}
	if _, ok := r.s.locations[sale.LocationID]; !ok {
		return domain.ErrInvalidInput
	}
	for _, it := range sale.Items {
		if _, ok := r.s.products[it.ProductID]; !ok {
			return domain.ErrInvalidInput
		}
	}
	r.s.sales[sale.ID] = cloneSale(sale)
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	out := cloneSale(&sale)
	return &out, nil
}

func (r *SaleRepo) List(ctx context.Context, locationID string, limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var keep func(entity.Sale) bool
	if locationID != "" {
		keep = func(s entity.Sale) bool { return s.LocationID == locationID }
	}
	list := sortedPtrs(r.s.sales, keep, func(a, b *entity.Sale) bool {
		if !a.SaleDate.Equal(b.SaleDate) {
			return a.SaleDate.After(b.SaleDate)
		}
		return a.ID < b.ID
	})
	list = page(list, limit, offset)
	for i, s := range list {
		c := cloneSale(s)
		list[i] = &c
	}
	return list, nil
}

func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.sales, id)
	return nil
}

func cloneSale(s *entity.Sale) entity.Sale {
	out := *s
	out.Items = append([]entity.SaleItem(nil), s.Items...)
	return out
}

var _ repository.SaleRepository = (*SaleRepo)(nil)
