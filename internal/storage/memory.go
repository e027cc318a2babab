package storage

import (
	"context"
	"sync"
)

// MemoryStore — синхронное резервное хранилище в памяти процесса.
// Переживает отказ основного уровня, но не перезапуск.
type MemoryStore struct {
	storage map[string][]byte
	mtx     *sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		storage: make(map[string][]byte),
		mtx:     &sync.RWMutex{},
	}
}

func (s *MemoryStore) Get(ctx context.Context, collection string) ([]byte, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	value, ok := s.storage[collection]
	if !ok {
		return nil, ErrNotFound
	}

	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, nil
}

func (s *MemoryStore) Put(ctx context.Context, collection string, value []byte) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	copied := make([]byte, len(value))
	copy(copied, value)
	s.storage[collection] = copied
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	delete(s.storage, collection)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
