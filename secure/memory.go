// Package secure provides explicit zeroization and owned buffers for key
// material: passphrases, derived keys and unsealed wallet secrets.
package secure

import (
	"runtime"
	"sync"
)

// Zeroize overwrites data with zeros. The KeepAlive call keeps the loop from
// being optimized away.
func Zeroize(data []byte) {
	if len(data) == 0 {
		return
	}
	for i := range data {
		data[i] = 0
	}
	runtime.KeepAlive(data)
}

// ZeroizeMultiple zeros several slices in one call.
func ZeroizeMultiple(slices ...[]byte) {
	for _, s := range slices {
		Zeroize(s)
	}
}

// Bytes wraps sensitive data with explicit cleanup. A finalizer zeros the
// buffer if Clear is never called, but callers should not rely on it.
type Bytes struct {
	mu    sync.RWMutex
	data  []byte
	freed bool
}

// FromBytes copies data into an owned secure buffer.
func FromBytes(data []byte) *Bytes {
	if len(data) == 0 {
		return &Bytes{}
	}
	b := &Bytes{data: make([]byte, len(data))}
	copy(b.data, data)
	runtime.SetFinalizer(b, (*Bytes).finalize)
	return b
}

// Bytes returns a copy of the protected data, or nil after Clear.
func (b *Bytes) Bytes() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.data == nil {
		return nil
	}
	result := make([]byte, len(b.data))
	copy(result, b.data)
	return result
}

// Size returns the length of the protected data.
func (b *Bytes) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data)
}

// IsEmpty reports whether the buffer is empty or cleared.
func (b *Bytes) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data) == 0
}

// Clear zeros the buffer and removes the finalizer. Safe to call more than
// once.
func (b *Bytes) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.freed && b.data != nil {
		Zeroize(b.data)
		b.data = nil
		b.freed = true
		runtime.SetFinalizer(b, nil)
	}
}

func (b *Bytes) finalize() {
	b.Clear()
}
