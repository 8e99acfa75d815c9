package memory

import (
	"context"
	"sync"
)

// KeyLock es un mapa de mutex por clave: serializa operaciones sobre la misma clave
// (p. ej. un registro de inventario) sin bloquear claves distintas. Las entradas se
// liberan cuando nadie las espera.
type KeyLock struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	ch   chan struct{} // buffer 1: lleno = tomado
	refs int
}

// NewKeyLock construye un KeyLock vacío.
func NewKeyLock() *KeyLock {
	return &KeyLock{entries: make(map[string]*lockEntry)}
}

// Lock toma la clave o espera hasta que se libere o ctx termine.
func (k *KeyLock) Lock(ctx context.Context, key string) error {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &lockEntry{ch: make(chan struct{}, 1)}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		k.release(key, e)
		return ctx.Err()
	}
}

// Unlock libera una clave tomada con Lock. Liberar una clave no tomada es un error de programación.
func (k *KeyLock) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.entries[key]
	k.mu.Unlock()
	if !ok {
		panic("memory: unlock de una clave no tomada: " + key)
	}
	<-e.ch
	k.release(key, e)
}

func (k *KeyLock) release(key string, e *lockEntry) {
	k.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
	k.mu.Unlock()
}

// size número de claves con dueño o en espera.
func (k *KeyLock) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}
