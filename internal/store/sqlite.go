package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"cm/internal/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS namespaces (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);`,
	`CREATE TABLE IF NOT EXISTS commands (
		id INTEGER PRIMARY KEY,
		value TEXT NOT NULL,
		namespace_id INTEGER NOT NULL,
		FOREIGN KEY (namespace_id) REFERENCES namespaces (id) ON DELETE CASCADE
	);`,
	`CREATE TABLE IF NOT EXISTS tags (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		command_id INTEGER NOT NULL,
		FOREIGN KEY (command_id) REFERENCES commands (id) ON DELETE CASCADE
	);`,
	`CREATE INDEX IF NOT EXISTS idx_commands_namespace ON commands(namespace_id);`,
}

// SQLiteStore keeps namespaces, commands and tags in a SQLite file
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the database at path and applies the schema
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	// modernc.org/sqlite registers itself as "sqlite"
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	// foreign_keys is per connection; a single connection keeps the cascade on
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply %q: %w", p, err)
		}
	}
	for _, st := range schema {
		if _, err := db.ExecContext(ctx, st); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database location
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) ListNamespaces(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM namespaces ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list namespaces: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list namespaces: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list namespaces: %w", err)
	}
	return names, nil
}

func (s *SQLiteStore) FindNamespace(ctx context.Context, name string) (string, bool, error) {
	var found string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM namespaces WHERE name = ?`, name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("find namespace %q: %w", name, err)
	}
	return found, true, nil
}

func (s *SQLiteStore) CreateNamespace(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrEmptyInput
	}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO namespaces (name) VALUES (?)`, name); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create namespace %q: %w", name, domain.ErrNamespaceExists)
		}
		return fmt.Errorf("create namespace %q: %w", name, err)
	}
	return nil
}

func (s *SQLiteStore) DeleteNamespace(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM namespaces WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete namespace %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete namespace %q: %w", name, domain.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) ListCommandsAndTags(ctx context.Context, namespace string) ([]string, []string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.value, t.name FROM commands c
		JOIN tags t ON t.command_id = c.id
		JOIN namespaces n ON n.id = c.namespace_id
		WHERE n.name = ?
		ORDER BY c.id`, namespace)
	if err != nil {
		return nil, nil, fmt.Errorf("list commands of %q: %w", namespace, err)
	}
	defer rows.Close()

	commands, tags := []string{}, []string{}
	for rows.Next() {
		var command, tag string
		if err := rows.Scan(&command, &tag); err != nil {
			return nil, nil, fmt.Errorf("list commands of %q: %w", namespace, err)
		}
		commands = append(commands, command)
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("list commands of %q: %w", namespace, err)
	}
	return commands, tags, nil
}

func (s *SQLiteStore) CreateCommandAndTag(ctx context.Context, command, tag, namespace string) error {
	if strings.TrimSpace(command) == "" || strings.TrimSpace(tag) == "" {
		return domain.ErrEmptyInput
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("add command: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var nsID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM namespaces WHERE name = ?`, namespace).Scan(&nsID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("add command to %q: %w", namespace, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("add command to %q: %w", namespace, err)
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO commands (value, namespace_id) VALUES (?, ?)`, command, nsID)
	if err != nil {
		return fmt.Errorf("add command to %q: %w", namespace, err)
	}
	cmdID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("add command to %q: %w", namespace, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO tags (name, command_id) VALUES (?, ?)`, tag, cmdID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tag %q: %w", tag, domain.ErrTagExists)
		}
		return fmt.Errorf("add tag %q: %w", tag, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("add command: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteCommand(ctx context.Context, command, namespace string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM commands
		WHERE value = ? AND namespace_id = (SELECT id FROM namespaces WHERE name = ?)`,
		command, namespace)
	if err != nil {
		return fmt.Errorf("delete command %q: %w", command, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete command %q: %w", command, domain.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) Stats(ctx context.Context) (domain.Stats, error) {
	st := domain.Stats{Location: s.path}
	err := s.db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM namespaces), (SELECT COUNT(*) FROM commands)`,
	).Scan(&st.Namespaces, &st.Commands)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("stats: %w", err)
	}
	return st, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
