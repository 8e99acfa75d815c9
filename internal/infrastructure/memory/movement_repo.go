package memory

import (
	"context"

	"github.com/jhoicas/tiles-api/internal/domain/entity"
	"github.com/jhoicas/tiles-api/internal/domain/repository"
)

// MovementRepo implementa repository.StockMovementRepository fuera de transacción.
type MovementRepo struct{ s *Store }

func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	return r.s.atomic(ctx, func(t *tx) error { return t.createMovement(ctx, m) })
}

func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.s.movementByID(id), nil
}

func (r *MovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockMovement, error) {
	var m *entity.StockMovement
	err := r.s.atomic(ctx, func(t *tx) error {
		var err error
		m, err = t.movementForUpdate(ctx, id)
		return err
	})
	return m, err
}

func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	return r.s.listMovements(filter, limit, offset), nil
}

func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	return r.s.atomic(ctx, func(t *tx) error { return t.deleteMovement(ctx, id) })
}

type txMovementRepo struct{ t *tx }

func (r *txMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	return r.t.createMovement(ctx, m)
}

func (r *txMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.t.lookupMovement(id), nil
}

func (r *txMovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.t.movementForUpdate(ctx, id)
}

func (r *txMovementRepo) List(ctx context.Context, filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	return r.t.s.listMovements(filter, limit, offset), nil
}

func (r *txMovementRepo) Delete(ctx context.Context, id string) error {
	return r.t.deleteMovement(ctx, id)
}

func (s *Store) movementByID(id string) *entity.StockMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.movements[id]
	if !ok {
		return nil
	}
	return &m
}

func (s *Store) listMovements(filter repository.MovementFilter, limit, offset int) []*entity.StockMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := sortedPtrs(s.movements, func(m entity.StockMovement) bool {
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			return false
		}
		return filter.LocationID == "" || m.FromLocationID == filter.LocationID || m.ToLocationID == filter.LocationID
	}, func(a, b *entity.StockMovement) bool {
		if !a.MovementDate.Equal(b.MovementDate) {
			return a.MovementDate.After(b.MovementDate)
		}
		return a.ID < b.ID
	})
	return page(list, limit, offset)
}

var (
	_ repository.StockMovementRepository = (*MovementRepo)(nil)
	_ repository.StockMovementRepository = (*txMovementRepo)(nil)
)
