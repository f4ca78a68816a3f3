// Package store persists namespaces and the commands filed under them.
package store

import (
	"context"

	"cm/internal/domain"
)

// DataStore is the storage collaborator of the navigation engine.
// Every list it returns is in insertion order.
type DataStore interface {
	ListNamespaces(ctx context.Context) ([]string, error)
	// FindNamespace is a case-sensitive exact lookup
	FindNamespace(ctx context.Context, name string) (string, bool, error)
	CreateNamespace(ctx context.Context, name string) error
	// DeleteNamespace removes the namespace with all of its commands and tags
	DeleteNamespace(ctx context.Context, name string) error
	// ListCommandsAndTags returns two index-aligned slices of equal length
	ListCommandsAndTags(ctx context.Context, namespace string) ([]string, []string, error)
	CreateCommandAndTag(ctx context.Context, command, tag, namespace string) error
	// DeleteCommand removes every command with that value in the namespace, tags included
	DeleteCommand(ctx context.Context, command, namespace string) error
	Stats(ctx context.Context) (domain.Stats, error)
	Close() error
}

// Fixture is the entry seeded into an empty store
var Fixture = domain.Entry{
	Namespace: "navigation",
	Command:   "cd ~/ && $SHELL",
	Tag:       "nav:home",
}

// Seed writes Fixture into ds when it holds no namespaces yet
func Seed(ctx context.Context, ds DataStore) error {
	names, err := ds.ListNamespaces(ctx)
	if err != nil {
		return err
	}
	if len(names) > 0 {
		return nil
	}
	if err := ds.CreateNamespace(ctx, Fixture.Namespace); err != nil {
		return err
	}
	return ds.CreateCommandAndTag(ctx, Fixture.Command, Fixture.Tag, Fixture.Namespace)
}
