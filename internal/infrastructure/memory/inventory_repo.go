package memory

import (
	"context"

	"github.com/jhoicas/tiles-api/internal/domain/entity"
	"github.com/jhoicas/tiles-api/internal/domain/repository"
)

// InventoryRepo implementa repository.InventoryRepository fuera de transacción:
// cada escritura es su propia transacción.
type InventoryRepo struct{ s *Store }

func (r *InventoryRepo) Create(ctx context.Context, rec *entity.InventoryRecord) error {
	return r.s.atomic(ctx, func(t *tx) error { return t.createInventory(ctx, rec) })
}

func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	return r.s.inventoryByID(id), nil
}

func (r *InventoryRepo) Get(ctx context.Context, productID, locationID string) (*entity.InventoryRecord, error) {
	return r.s.inventoryByKey(productID, locationID), nil
}

func (r *InventoryRepo) List(ctx context.Context, filter repository.InventoryFilter, limit, offset int) ([]*entity.InventoryRecord, error) {
	return r.s.listInventory(filter, limit, offset), nil
}

func (r *InventoryRepo) ListNegative(ctx context.Context) ([]*entity.InventoryRecord, error) {
	return r.s.listNegative(), nil
}

func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	return r.s.atomic(ctx, func(t *tx) error { return t.deleteInventory(ctx, id) })
}

// GetForUpdate fuera de transacción equivale a Get: el lock se suelta al volver.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.InventoryRecord, error) {
	var rec *entity.InventoryRecord
	err := r.s.atomic(ctx, func(t *tx) error {
		var err error
		rec, err = t.getForUpdate(ctx, productID, locationID)
		return err
	})
	return rec, err
}

func (r *InventoryRepo) GetOrCreateForUpdate(ctx context.Context, productID, locationID string) (*entity.InventoryRecord, error) {
	var rec *entity.InventoryRecord
	err := r.s.atomic(ctx, func(t *tx) error {
		var err error
		rec, err = t.getOrCreateForUpdate(ctx, productID, locationID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *InventoryRepo) UpdateQuantity(ctx context.Context, id string, quantity int64) error {
	return r.s.atomic(ctx, func(t *tx) error { return t.updateQuantity(ctx, id, quantity) })
}

// txInventoryRepo es la vista de inventario de una transacción de Store.Run.
type txInventoryRepo struct{ t *tx }

func (r *txInventoryRepo) Create(ctx context.Context, rec *entity.InventoryRecord) error {
	return r.t.createInventory(ctx, rec)
}

func (r *txInventoryRepo) GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	if rec, ok := r.t.inv[id]; ok {
		if r.t.invDelete[id] {
			return nil, nil
		}
		out := *rec
		return &out, nil
	}
	return r.t.s.inventoryByID(id), nil
}

func (r *txInventoryRepo) Get(ctx context.Context, productID, locationID string) (*entity.InventoryRecord, error) {
	rec := r.t.lookupInventory(productID, locationID)
	if rec == nil {
		return nil, nil
	}
	out := *rec
	return &out, nil
}

// List y ListNegative leen el estado confirmado.
func (r *txInventoryRepo) List(ctx context.Context, filter repository.InventoryFilter, limit, offset int) ([]*entity.InventoryRecord, error) {
	return r.t.s.listInventory(filter, limit, offset), nil
}

func (r *txInventoryRepo) ListNegative(ctx context.Context) ([]*entity.InventoryRecord, error) {
	return r.t.s.listNegative(), nil
}

func (r *txInventoryRepo) Delete(ctx context.Context, id string) error {
	return r.t.deleteInventory(ctx, id)
}

func (r *txInventoryRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.InventoryRecord, error) {
	return r.t.getForUpdate(ctx, productID, locationID)
}

func (r *txInventoryRepo) GetOrCreateForUpdate(ctx context.Context, productID, locationID string) (*entity.InventoryRecord, error) {
	return r.t.getOrCreateForUpdate(ctx, productID, locationID)
}

func (r *txInventoryRepo) UpdateQuantity(ctx context.Context, id string, quantity int64) error {
	return r.t.updateQuantity(ctx, id, quantity)
}

func (s *Store) inventoryByID(id string) *entity.InventoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.inventory[id]
	if !ok {
		return nil
	}
	return &rec
}

func (s *Store) inventoryByKey(productID, locationID string) *entity.InventoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.invIndex[inventoryKey(productID, locationID)]
	if !ok {
		return nil
	}
	rec := s.inventory[id]
	return &rec
}

func (s *Store) listInventory(filter repository.InventoryFilter, limit, offset int) []*entity.InventoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := sortedPtrs(s.inventory, func(r entity.InventoryRecord) bool {
		if filter.ProductID != "" && r.ProductID != filter.ProductID {
			return false
		}
		return filter.LocationID == "" || r.LocationID == filter.LocationID
	}, lessByLastUpdated)
	return page(list, limit, offset)
}

func (s *Store) listNegative() []*entity.InventoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedPtrs(s.inventory, func(r entity.InventoryRecord) bool { return r.Quantity < 0 }, lessByLastUpdated)
}

func lessByLastUpdated(a, b *entity.InventoryRecord) bool {
	if !a.LastUpdated.Equal(b.LastUpdated) {
		return a.LastUpdated.After(b.LastUpdated)
	}
	return a.ID < b.ID
}

var (
	_ repository.InventoryRepository = (*InventoryRepo)(nil)
	_ repository.InventoryRepository = (*txInventoryRepo)(nil)
)
