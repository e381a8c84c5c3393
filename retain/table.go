package retain

import (
	"errors"
	"sync"
)

var (
	ErrClosed  = errors.New("retain table closed")
	ErrNilKey  = errors.New("retain key is null")
	ErrPresent = errors.New("key already retained")
)

type entry struct {
	value  any
	typeID uint32
}

type observerEntry struct {
	obs Observer
	id  uint64
}

// Table maps native handles to the values retained for them.
type Table struct {
	entries   map[uintptr]entry
	observers []observerEntry
	nextObsID uint64
	mu        sync.RWMutex
	obsMu     sync.RWMutex
	closed    bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		entries: make(map[uintptr]entry),
	}
}

// Insert retains value for key. The null key and keys already present are
// rejected; a native handle is retained for at most once.
func (t *Table) Insert(key uintptr, typeID uint32, value any) error {
	if key == 0 {
		return ErrNilKey
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	if _, exists := t.entries[key]; exists {
		t.mu.Unlock()
		return ErrPresent
	}
	t.entries[key] = entry{value: value, typeID: typeID}
	t.mu.Unlock()

	t.notify(Event{
		Type:   EventRetained,
		Key:    key,
		TypeID: typeID,
		Value:  value,
	})
	return nil
}

// Get retrieves the value retained for key.
func (t *Table) Get(key uintptr) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[key]
	return e.value, ok
}

// GetTyped retrieves a value only if it was retained with typeID.
func (t *Table) GetTyped(key uintptr, typeID uint32) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[key]
	if !ok || e.typeID != typeID {
		return nil, false
	}
	return e.value, true
}

// Remove releases the value retained for key and returns (value, true) if
// there was one. Dropper values are dropped before observers are notified.
func (t *Table) Remove(key uintptr) (any, bool) {
	t.mu.Lock()
	e, ok := t.entries[key]
	if ok {
		delete(t.entries, key)
	}
	t.mu.Unlock()

	if !ok {
		return nil, false
	}

	t.release(key, e)
	return e.value, true
}

// Len returns the number of retained values.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Bytes returns the total size of retained values implementing Sizer.
func (t *Table) Bytes() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	total := 0
	for _, e := range t.entries {
		if s, ok := e.value.(Sizer); ok {
			total += s.Size()
		}
	}
	return total
}

// Each calls fn for every retained value until fn returns false.
// The table must not be modified from fn.
func (t *Table) Each(fn func(key uintptr, typeID uint32, value any) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for k, e := range t.entries {
		if !fn(k, e.typeID, e.value) {
			return
		}
	}
}

// Clear releases every retained value.
func (t *Table) Clear() {
	t.mu.Lock()
	entries := t.entries
	t.entries = make(map[uintptr]entry)
	t.mu.Unlock()

	for k, e := range entries {
		t.release(k, e)
	}
}

// Close releases every retained value and rejects further inserts.
func (t *Table) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	t.closed = true
	t.mu.Unlock()

	t.Clear()
	return nil
}

// Subscribe adds an observer for lifecycle events and returns a function
// that removes it.
func (t *Table) Subscribe(o Observer) (unsubscribe func()) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.nextObsID++
	id := t.nextObsID
	t.observers = append(t.observers, observerEntry{obs: o, id: id})

	return func() {
		t.obsMu.Lock()
		defer t.obsMu.Unlock()
		for i, oe := range t.observers {
			if oe.id == id {
				t.observers = append(t.observers[:i], t.observers[i+1:]...)
				return
			}
		}
	}
}

func (t *Table) release(key uintptr, e entry) {
	if d, ok := e.value.(Dropper); ok {
		d.Drop()
	}
	t.notify(Event{
		Type:   EventReleased,
		Key:    key,
		TypeID: e.typeID,
		Value:  e.value,
	})
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, oe := range t.observers {
		oe.obs.OnRetainEvent(e)
	}
}
