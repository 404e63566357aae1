// Package docstore abstracts a document database behind collection/document
// semantics: per-document get/set/update/delete plus simple equality and
// range queries. The production implementation is MongoDB; an in-memory
// implementation backs tests and local development.
package docstore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when the referenced document does not exist.
	ErrNotFound = errors.New("docstore: document not found")

	// ErrUnsupportedFilter is returned by stores that cannot evaluate the
	// given filter combination (e.g. range filters on multiple fields).
	// Callers fall back to client-side filtering.
	ErrUnsupportedFilter = errors.New("docstore: unsupported filter combination")
)

// Op is a filter comparison operator.
type Op string

const (
	OpEq  Op = "=="
	OpGte Op = ">="
	OpLte Op = "<="
)

// Filter is one conjunctive query condition.
type Filter struct {
	Field string
	Op    Op
	Value interface{}
}

// Eq builds an equality filter.
func Eq(field string, value interface{}) Filter { return Filter{Field: field, Op: OpEq, Value: value} }

// Gte builds a >= filter.
func Gte(field string, value interface{}) Filter {
	return Filter{Field: field, Op: OpGte, Value: value}
}

// Lte builds a <= filter.
func Lte(field string, value interface{}) Filter {
	return Filter{Field: field, Op: OpLte, Value: value}
}

// Collection is a named set of documents keyed by string id.
//
// dest arguments follow the mongo-driver convention: Get decodes into a
// struct pointer, Find and GetMulti decode into a pointer to a slice.
type Collection interface {
	// Get loads the document with the given id. ErrNotFound when absent.
	Get(ctx context.Context, id string, dest interface{}) error

	// Set stores doc under id, replacing any existing document.
	Set(ctx context.Context, id string, doc interface{}) error

	// Merge upserts only the given fields, leaving other fields untouched.
	Merge(ctx context.Context, id string, fields map[string]interface{}) error

	// Add stores doc under a newly generated id and returns that id.
	Add(ctx context.Context, doc interface{}) (string, error)

	// Update overwrites the given fields of an existing document.
	// ErrNotFound when the document does not exist.
	Update(ctx context.Context, id string, fields map[string]interface{}) error

	// Delete removes the document. Deleting an absent document is a no-op.
	Delete(ctx context.Context, id string) error

	// Find returns all documents matching every filter (conjunctive).
	// No match decodes an empty slice, not an error.
	Find(ctx context.Context, filters []Filter, dest interface{}) error

	// GetMulti loads the documents with the given ids in one round trip.
	// Absent ids are silently skipped.
	GetMulti(ctx context.Context, ids []string, dest interface{}) error
}

// Store hands out collections.
type Store interface {
	Collection(name string) Collection
}
