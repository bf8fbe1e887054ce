package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryStorage keeps objects in a map. Used for tests and for running the
// server without any persistent backend.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	baseURL string

	// Fail* inject backend errors
	FailSave   error
	FailDelete error
	FailExists error
}

type memoryObject struct {
	data        []byte
	contentType string
}

func NewMemoryStorage(baseURL string) *MemoryStorage {
	if baseURL == "" {
		baseURL = "https://cdn.test"
	}
	return &MemoryStorage{objects: make(map[string]memoryObject), baseURL: baseURL}
}

func (s *MemoryStorage) Save(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	if s.FailSave != nil {
		return "", s.FailSave
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read payload: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = memoryObject{data: data, contentType: contentType}
	return key, nil
}

func (s *MemoryStorage) Open(ctx context.Context, handle string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[handle]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (s *MemoryStorage) Delete(ctx context.Context, handle string) error {
	if s.FailDelete != nil {
		return s.FailDelete
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, handle)
	return nil
}

func (s *MemoryStorage) Exists(ctx context.Context, handle string) (bool, error) {
	if s.FailExists != nil {
		return false, s.FailExists
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[handle]
	return ok, nil
}

func (s *MemoryStorage) GetURL(ctx context.Context, handle string) (string, error) {
	return joinURL(s.baseURL, handle), nil
}

// Len returns the number of stored objects
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Remove drops an object without going through Delete
func (s *MemoryStorage) Remove(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, handle)
}

// Bytes returns the stored payload for a handle
func (s *MemoryStorage) Bytes(handle string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[handle]
	return obj.data, ok
}
