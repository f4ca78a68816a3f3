package domain

import "errors"

var (
	// ErrEmptyInput is returned when an empty value is submitted from a text field
	ErrEmptyInput = errors.New("input cannot be empty")

	// ErrNamespaceExists is returned when creating a namespace whose name is taken
	ErrNamespaceExists = errors.New("namespace already exists")

	// ErrNotFound is returned when a namespace or command does not exist
	ErrNotFound = errors.New("not found")

	// ErrTagExists is returned when a tag name is already attached to another command
	ErrTagExists = errors.New("tag already exists")
)
