package store

import "errors"

// DefaultKey names the slot the collection is stored under. Bumping the
// version starts a fresh slot; data under the old key is left behind.
const DefaultKey = "todos_v2"

// ErrNoValue is returned by Slot.Get when nothing is stored under the key.
var ErrNoValue = errors.New("no value stored")

// Slot is a durable key-value location the store persists into.
type Slot interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// MemorySlot keeps values in process memory. Used by tests and for
// sessions that should not touch disk.
type MemorySlot struct {
	values map[string][]byte
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: map[string][]byte{}}
}

func (m *MemorySlot) Get(key string) ([]byte, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNoValue
	}
	return append([]byte(nil), v...), nil
}

func (m *MemorySlot) Set(key string, value []byte) error {
	m.values[key] = append([]byte(nil), value...)
	return nil
}
