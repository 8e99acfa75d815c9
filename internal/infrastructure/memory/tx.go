package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tiles-api/internal/application/inventory"
	"github.com/jhoicas/tiles-api/internal/domain"
	"github.com/jhoicas/tiles-api/internal/domain/entity"
	"github.com/jhoicas/tiles-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// tx es una transacción del store: toma locks por clave (equivalente a SELECT ... FOR UPDATE),
// acumula las escrituras y solo las publica en commit. Los locks se liberan al terminar.
type tx struct {
	s    *Store
	held map[string]bool
	// orden de adquisición, para liberar en orden inverso
	order []string

	inv       map[string]*entity.InventoryRecord // por id, copias de trabajo
	invByKey  map[string]string                  // inventoryKey -> id de lo que está en inv
	invNew    map[string]bool
	invDelete map[string]bool
	movCreate map[string]entity.StockMovement
	movDelete map[string]bool
}

func (s *Store) begin() *tx {
	return &tx{
		s:         s,
		held:      make(map[string]bool),
		inv:       make(map[string]*entity.InventoryRecord),
		invByKey:  make(map[string]string),
		invNew:    make(map[string]bool),
		invDelete: make(map[string]bool),
		movCreate: make(map[string]entity.StockMovement),
		movDelete: make(map[string]bool),
	}
}

// Run ejecuta fn dentro de una transacción. Si fn falla nada se publica.
func (s *Store) Run(
	ctx context.Context,
	fn func(inventoryRepo repository.InventoryRepository, movementRepo repository.StockMovementRepository) error,
) error {
	t := s.begin()
	defer t.release()

	if err := fn(&txInventoryRepo{t: t}, &txMovementRepo{t: t}); err != nil {
		return err
	}
	return t.commit(ctx)
}

// atomic ejecuta una escritura suelta con las mismas garantías que Run.
func (s *Store) atomic(ctx context.Context, fn func(t *tx) error) error {
	t := s.begin()
	defer t.release()
	if err := fn(t); err != nil {
		return err
	}
	return t.commit(ctx)
}

// lock es reentrante dentro de la misma transacción.
func (t *tx) lock(ctx context.Context, key string) error {
	if t.held[key] {
		return nil
	}
	if err := t.s.locks.Lock(ctx, key); err != nil {
		return err
	}
	t.held[key] = true
	t.order = append(t.order, key)
	return nil
}

func (t *tx) release() {
	for i := len(t.order) - 1; i >= 0; i-- {
		t.s.locks.Unlock(t.order[i])
	}
	t.order = nil
	t.held = map[string]bool{}
}

// lookupInventory ve primero lo escrito por la transacción y luego lo confirmado.
func (t *tx) lookupInventory(productID, locationID string) *entity.InventoryRecord {
	key := inventoryKey(productID, locationID)
	if id, ok := t.invByKey[key]; ok {
		if t.invDelete[id] {
			return nil
		}
		return t.inv[id]
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	id, ok := t.s.invIndex[key]
	if !ok {
		return nil
	}
	rec := t.s.inventory[id]
	return &rec
}

func (t *tx) stage(rec *entity.InventoryRecord) *entity.InventoryRecord {
	t.inv[rec.ID] = rec
	t.invByKey[inventoryKey(rec.ProductID, rec.LocationID)] = rec.ID
	return rec
}

func (t *tx) getForUpdate(ctx context.Context, productID, locationID string) (*entity.InventoryRecord, error) {
	if err := t.lock(ctx, inventoryKey(productID, locationID)); err != nil {
		return nil, err
	}
	rec := t.lookupInventory(productID, locationID)
	if rec == nil {
		return nil, nil
	}
	staged := t.stage(rec)
	out := *staged
	return &out, nil
}

func (t *tx) createInventory(ctx context.Context, rec *entity.InventoryRecord) error {
	if err := t.lock(ctx, inventoryKey(rec.ProductID, rec.LocationID)); err != nil {
		return err
	}
	if t.lookupInventory(rec.ProductID, rec.LocationID) != nil {
		return domain.ErrDuplicate
	}
	if !t.s.inventoryRefsExist(rec.ProductID, rec.LocationID) {
		return domain.ErrInvalidInput
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.LastUpdated.IsZero() {
		rec.LastUpdated = now()
	}
	cp := *rec
	t.stage(&cp)
	t.invNew[cp.ID] = true
	return nil
}

func (t *tx) getOrCreateForUpdate(ctx context.Context, productID, locationID string) (*entity.InventoryRecord, error) {
	rec, err := t.getForUpdate(ctx, productID, locationID)
	if err != nil || rec != nil {
		return rec, err
	}
	rec = &entity.InventoryRecord{ProductID: productID, LocationID: locationID}
	if err := t.createInventory(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (t *tx) updateQuantity(ctx context.Context, id string, quantity int64) error {
	rec, ok := t.inv[id]
	if !ok {
		t.s.mu.RLock()
		committed, found := t.s.inventory[id]
		t.s.mu.RUnlock()
		if !found {
			return domain.ErrNotFound
		}
		locked, err := t.getForUpdate(ctx, committed.ProductID, committed.LocationID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		rec = t.inv[locked.ID]
	}
	if t.invDelete[id] {
		return domain.ErrNotFound
	}
	rec.Quantity = quantity
	rec.LastUpdated = now()
	return nil
}

func (t *tx) deleteInventory(ctx context.Context, id string) error {
	rec, ok := t.inv[id]
	if !ok {
		t.s.mu.RLock()
		committed, found := t.s.inventory[id]
		t.s.mu.RUnlock()
		if !found {
			return domain.ErrNotFound
		}
		locked, err := t.getForUpdate(ctx, committed.ProductID, committed.LocationID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		rec = t.inv[locked.ID]
	}
	if t.invDelete[rec.ID] {
		return domain.ErrNotFound
	}
	t.invDelete[rec.ID] = true
	return nil
}

func (t *tx) lookupMovement(id string) *entity.StockMovement {
	if t.movDelete[id] {
		return nil
	}
	if m, ok := t.movCreate[id]; ok {
		return &m
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	m, ok := t.s.movements[id]
	if !ok {
		return nil
	}
	return &m
}

func (t *tx) createMovement(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if err := t.lock(ctx, movementKey(m.ID)); err != nil {
		return err
	}
	if t.lookupMovement(m.ID) != nil {
		return domain.ErrDuplicate
	}
	if m.Quantity <= 0 || !t.s.movementRefsExist(m) {
		return domain.ErrInvalidInput
	}
	if m.MovementDate.IsZero() {
		m.MovementDate = now()
	}
	t.movCreate[m.ID] = *m
	return nil
}

func (t *tx) movementForUpdate(ctx context.Context, id string) (*entity.StockMovement, error) {
	if err := t.lock(ctx, movementKey(id)); err != nil {
		return nil, err
	}
	return t.lookupMovement(id), nil
}

func (t *tx) deleteMovement(ctx context.Context, id string) error {
	m, err := t.movementForUpdate(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	if _, ok := t.movCreate[id]; ok {
		delete(t.movCreate, id)
		return nil
	}
	t.movDelete[id] = true
	return nil
}

// commit valida las referencias contra el estado confirmado y publica todo bajo el mutex del store.
func (t *tx) commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range t.invNew {
		if t.invDelete[id] {
			continue
		}
		rec := t.inv[id]
		if !s.inventoryRefsExistLocked(rec.ProductID, rec.LocationID) {
			return domain.ErrInvalidInput
		}
	}
	for _, m := range t.movCreate {
		m := m
		if !s.movementRefsExistLocked(&m) {
			return domain.ErrInvalidInput
		}
	}

	for id, rec := range t.inv {
		key := inventoryKey(rec.ProductID, rec.LocationID)
		if t.invDelete[id] {
			if !t.invNew[id] {
				delete(s.inventory, id)
				delete(s.invIndex, key)
			}
			continue
		}
		if _, ok := s.inventory[id]; !ok && !t.invNew[id] {
			continue
		}
		s.inventory[id] = *rec
		s.invIndex[key] = id
	}
	for id, m := range t.movCreate {
		s.movements[id] = m
	}
	for id := range t.movDelete {
		delete(s.movements, id)
	}
	return nil
}

func (s *Store) inventoryRefsExist(productID, locationID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inventoryRefsExistLocked(productID, locationID)
}

func (s *Store) inventoryRefsExistLocked(productID, locationID string) bool {
	_, okP := s.products[productID]
	_, okL := s.locations[locationID]
	return okP && okL
}

func (s *Store) movementRefsExist(m *entity.StockMovement) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.movementRefsExistLocked(m)
}

func (s *Store) movementRefsExistLocked(m *entity.StockMovement) bool {
	_, okP := s.products[m.ProductID]
	_, okF := s.locations[m.FromLocationID]
	_, okT := s.locations[m.ToLocationID]
	return okP && okF && okT
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
