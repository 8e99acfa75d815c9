package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/tiles-api/internal/domain"
	"github.com/jhoicas/tiles-api/internal/domain/entity"
	"github.com/jhoicas/tiles-api/internal/domain/repository"
)

// BrandRepo implementa repository.BrandRepository.
type BrandRepo struct{ s *Store }

func (r *BrandRepo) Create(ctx context.Context, b *entity.Brand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.brands[b.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.brands[b.ID] = *b
	return nil
}

func (r *BrandRepo) GetByID(ctx context.Context, id string) (*entity.Brand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.brands[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *BrandRepo) Update(ctx context.Context, b *entity.Brand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.brands[b.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.brands[b.ID] = *b
	return nil
}

func (r *BrandRepo) List(ctx context.Context, limit, offset int) ([]*entity.Brand, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := sortedPtrs(r.s.brands, nil, func(a, b *entity.Brand) bool {
		return lessByName(a.Name, a.ID, b.Name, b.ID)
	})
	return page(list, limit, offset), nil
}

func (r *BrandRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.brands[id]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.s.products {
		if p.BrandID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.brands, id)
	return nil
}

// CategoryRepo implementa repository.CategoryRepository.
type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) List(ctx context.Context, limit, offset int) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := sortedPtrs(r.s.categories, nil, func(a, b *entity.Category) bool {
		return lessByName(a.Name, a.ID, b.Name, b.ID)
	})
	return page(list, limit, offset), nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.s.products {
		if p.CategoryID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.categories, id)
	return nil
}

// LocationRepo implementa repository.LocationRepository.
type LocationRepo struct{ s *Store }

func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.locations[l.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.locations[l.ID] = *l
	return nil
}

func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.locations[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *LocationRepo) Update(ctx context.Context, l *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.locations[l.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.locations[l.ID] = *l
	return nil
}

func (r *LocationRepo) List(ctx context.Context, locationType string, limit, offset int) ([]*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var keep func(entity.Location) bool
	if locationType != "" {
		keep = func(l entity.Location) bool { return l.Type == locationType }
	}
	list := sortedPtrs(r.s.locations, keep, func(a, b *entity.Location) bool {
		return lessByName(a.Name, a.ID, b.Name, b.ID)
	})
	return page(list, limit, offset), nil
}

func (r *LocationRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.locations[id]; !ok {
		return domain.ErrNotFound
	}
	if r.s.locationInUse(id) {
		return domain.ErrConflict
	}
	delete(r.s.locations, id)
	return nil
}

// ProductRepo implementa repository.ProductRepository.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	if err := r.s.checkProduct(p); err != nil {
		return err
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.Code == code {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := r.s.checkProduct(p); err != nil {
		return err
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := sortedPtrs(r.s.products, nil, func(a, b *entity.Product) bool {
		return lessByName(a.Code, a.ID, b.Code, b.ID)
	})
	return page(list, limit, offset), nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	if r.s.productInUse(id) {
		return domain.ErrConflict
	}
	delete(r.s.products, id)
	return nil
}

// checkProduct replica las restricciones de la tabla products: FKs y código único. Requiere s.mu.
func (s *Store) checkProduct(p *entity.Product) error {
	if _, ok := s.brands[p.BrandID]; !ok {
		return domain.ErrInvalidInput
	}
	if _, ok := s.categories[p.CategoryID]; !ok {
		return domain.ErrInvalidInput
	}
	for _, other := range s.products {
		if other.ID != p.ID && other.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	return nil
}

func (s *Store) productInUse(id string) bool {
	for _, rec := range s.inventory {
		if rec.ProductID == id {
			return true
		}
	}
	for _, m := range s.movements {
		if m.ProductID == id {
			return true
		}
	}
	for _, sale := range s.sales {
		for _, it := range sale.Items {
			if it.ProductID == id {
				return true
			}
		}
	}
	return false
}

func (s *Store) locationInUse(id string) bool {
	for _, rec := range s.inventory {
		if rec.LocationID == id {
			return true
		}
	}
	for _, m := range s.movements {
		if m.FromLocationID == id || m.ToLocationID == id {
			return true
		}
	}
	for _, sale := range s.sales {
		if sale.LocationID == id {
			return true
		}
	}
	return false
}

func lessByName(aName, aID, bName, bID string) bool {
	an, bn := strings.ToLower(aName), strings.ToLower(bName)
	if an != bn {
		return an < bn
	}
	return aID < bID
}

var (
	_ repository.BrandRepository    = (*BrandRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.LocationRepository = (*LocationRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
)
