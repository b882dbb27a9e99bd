package lru

import "sync"

// RWLocker define base interface of sync.RWMutex
type RWLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

var _ RWLocker = (*sync.RWMutex)(nil)

// NoOpRWLocker is a dummy noop implementation of RWLocker interface.
// Use it with WithLocker when the caller already serializes access.
type NoOpRWLocker struct{}

// Lock perform noop Lock() operation
func (nop NoOpRWLocker) Lock() {}

// Unlock perform noop Unlock() operation
func (nop NoOpRWLocker) Unlock() {}

// RLock perform noop RLock() operation
func (nop NoOpRWLocker) RLock() {}

// RUnlock perform noop RUnlock() operation
func (nop NoOpRWLocker) RUnlock() {}
