package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"cm/internal/domain"
)

// MemoryStore is an in-memory implementation of DataStore
type MemoryStore struct {
	mu         sync.RWMutex
	namespaces []string
	entries    map[string][]domain.Entry // namespace -> entries in insertion order
}

// NewMemoryStore creates an empty memory-based store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		namespaces: make([]string, 0),
		entries:    make(map[string][]domain.Entry),
	}
}

func (s *MemoryStore) ListNamespaces(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent external modification
	result := make([]string, len(s.namespaces))
	copy(result, s.namespaces)
	return result, nil
}

func (s *MemoryStore) FindNamespace(ctx context.Context, name string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.hasNamespace(name) {
		return name, true, nil
	}
	return "", false, nil
}

func (s *MemoryStore) CreateNamespace(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrEmptyInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasNamespace(name) {
		return fmt.Errorf("create namespace %q: %w", name, domain.ErrNamespaceExists)
	}
	s.namespaces = append(s.namespaces, name)
	return nil
}

func (s *MemoryStore) DeleteNamespace(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, ns := range s.namespaces {
		if ns == name {
			s.namespaces = append(s.namespaces[:i:i], s.namespaces[i+1:]...)
			delete(s.entries, name)
			return nil
		}
	}
	return fmt.Errorf("delete namespace %q: %w", name, domain.ErrNotFound)
}

func (s *MemoryStore) ListCommandsAndTags(ctx context.Context, namespace string) ([]string, []string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.entries[namespace]
	commands := make([]string, 0, len(entries))
	tags := make([]string, 0, len(entries))
	for _, e := range entries {
		commands = append(commands, e.Command)
		tags = append(tags, e.Tag)
	}
	return commands, tags, nil
}

func (s *MemoryStore) CreateCommandAndTag(ctx context.Context, command, tag, namespace string) error {
	if strings.TrimSpace(command) == "" || strings.TrimSpace(tag) == "" {
		return domain.ErrEmptyInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasNamespace(namespace) {
		return fmt.Errorf("add command to %q: %w", namespace, domain.ErrNotFound)
	}
	// tags are unique across namespaces
	for _, entries := range s.entries {
		for _, e := range entries {
			if e.Tag == tag {
				return fmt.Errorf("tag %q: %w", tag, domain.ErrTagExists)
			}
		}
	}
	s.entries[namespace] = append(s.entries[namespace], domain.Entry{
		Namespace: namespace,
		Command:   command,
		Tag:       tag,
	})
	return nil
}

func (s *MemoryStore) DeleteCommand(ctx context.Context, command, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.entries[namespace]
	kept := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Command != command {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return fmt.Errorf("delete command %q: %w", command, domain.ErrNotFound)
	}
	s.entries[namespace] = kept
	return nil
}

func (s *MemoryStore) Stats(ctx context.Context) (domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := domain.Stats{Location: "memory", Namespaces: len(s.namespaces)}
	for _, entries := range s.entries {
		st.Commands += len(entries)
	}
	return st, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) hasNamespace(name string) bool {
	for _, ns := range s.namespaces {
		if ns == name {
			return true
		}
	}
	return false
}
