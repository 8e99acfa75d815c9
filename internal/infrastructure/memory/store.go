// Package memory implementa los puertos de persistencia en memoria.
//
// Se usa con STORE_DRIVER=memory (desarrollo, demos) y en los tests. No hay base de datos que
// aporte bloqueo de filas, así que el paquete lo provee con un KeyLock por registro de inventario
// y por movimiento; las escrituras de una transacción se acumulan y se publican juntas en el commit.
package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/tiles-api/internal/domain/entity"
)

// Store mantiene todas las tablas en memoria.
type Store struct {
	mu    sync.RWMutex
	locks *KeyLock

	brands     map[string]entity.Brand
	categories map[string]entity.Category
	locations  map[string]entity.Location
	products   map[string]entity.Product
	inventory  map[string]entity.InventoryRecord
	invIndex   map[string]string // inventoryKey(product, location) -> id
	movements  map[string]entity.StockMovement
	sales      map[string]entity.Sale
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		locks:      NewKeyLock(),
		brands:     make(map[string]entity.Brand),
		categories: make(map[string]entity.Category),
		locations:  make(map[string]entity.Location),
		products:   make(map[string]entity.Product),
		inventory:  make(map[string]entity.InventoryRecord),
		invIndex:   make(map[string]string),
		movements:  make(map[string]entity.StockMovement),
		sales:      make(map[string]entity.Sale),
	}
}

// Brands devuelve el repositorio de marcas.
func (s *Store) Brands() *BrandRepo { return &BrandRepo{s: s} }

// Categories devuelve el repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

// Locations devuelve el repositorio de ubicaciones.
func (s *Store) Locations() *LocationRepo { return &LocationRepo{s: s} }

// Products devuelve el repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Inventory devuelve el repositorio de inventario fuera de transacción.
func (s *Store) Inventory() *InventoryRepo { return &InventoryRepo{s: s} }

// Movements devuelve el repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// Sales devuelve el repositorio de ventas.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{s: s} }

func inventoryKey(productID, locationID string) string {
	return "inv:" + productID + "|" + locationID
}

func movementKey(id string) string {
	return "mov:" + id
}

// page aplica limit/offset sobre una lista ya ordenada.
func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

// sortedPtrs copia los valores del mapa a punteros nuevos y los ordena con less.
func sortedPtrs[T any](m map[string]T, keep func(T) bool, less func(a, b *T) bool) []*T {
	out := make([]*T, 0, len(m))
	for _, v := range m {
		if keep != nil && !keep(v) {
			continue
		}
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
