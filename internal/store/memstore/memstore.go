// Package memstore is an in-memory key/value store used for tests and
// throwaway sessions.
package memstore

import (
	"context"
	"errors"
	"sync"
)

// ErrInjected is returned when failure injection is switched on.
var ErrInjected = errors.New("memstore: injected failure")

type Store struct {
	mu   sync.Mutex
	data map[string]string

	failGets bool
	failSets bool
	sets     int
}

func New() *Store {
	return &Store{data: map[string]string{}}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGets {
		return "", false, ErrInjected
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSets {
		return ErrInjected
	}
	s.data[key] = value
	s.sets++
	return nil
}

func (s *Store) Close() error { return nil }

// FailGets makes every following Get return ErrInjected.
func (s *Store) FailGets(fail bool) {
	s.mu.Lock()
	s.failGets = fail
	s.mu.Unlock()
}

// FailSets makes every following Set return ErrInjected.
func (s *Store) FailSets(fail bool) {
	s.mu.Lock()
	s.failSets = fail
	s.mu.Unlock()
}

// Sets counts successful writes.
func (s *Store) Sets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}

// Raw returns the stored blob without going through failure injection.
func (s *Store) Raw(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}
