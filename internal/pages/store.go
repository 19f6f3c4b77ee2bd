// Package pages manages the named page documents the public site reads:
// bootstrap with typed defaults, whole-document upsert, single-field set,
// and transactional list append.
package pages

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdg-fisk/content-pipeline/internal/common"
	"github.com/gdg-fisk/content-pipeline/internal/content"
)

// Store exposes page-document operations over a Backend and an explicit
// catalog. The catalog is read-only after construction.
type Store struct {
	backend Backend
	catalog []CatalogEntry
	logger  *slog.Logger
}

// NewStore wires a store and bootstraps every catalog entry that is absent.
// A per-entry bootstrap failure is logged and skipped so one bad document
// does not block the rest.
func NewStore(ctx context.Context, backend Backend, catalog []CatalogEntry, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{backend: backend, catalog: catalog, logger: logger}
	s.bootstrap(ctx)
	return s, nil
}

func (s *Store) bootstrap(ctx context.Context) {
	for _, entry := range s.catalog {
		exists, err := s.backend.Exists(ctx, entry.Name)
		if err != nil {
			s.logger.Error("pages.bootstrap.check_failed", "doc", entry.Name, "error", err)
			continue
		}
		if exists {
			s.logger.Debug("pages.bootstrap.present", "doc", entry.Name)
			continue
		}
		fields, err := content.Flatten(entry.Default)
		if err != nil {
			s.logger.Error("pages.bootstrap.flatten_failed", "doc", entry.Name, "error", err)
			continue
		}
		if err := s.backend.Apply(ctx, entry.Name, fields); err != nil {
			s.logger.Error("pages.bootstrap.create_failed", "doc", entry.Name, "error", err)
			continue
		}
		s.logger.Info("pages.bootstrap.created", "doc", entry.Name)
	}
}

// Catalog returns the declared page documents.
func (s *Store) Catalog() []CatalogEntry {
	return s.catalog
}

// Upsert flattens record and merges it into the named document, creating the
// document when absent.
func (s *Store) Upsert(ctx context.Context, name string, record any) error {
	fields, err := content.Flatten(record)
	if err != nil {
		return err
	}
	if err := s.backend.Apply(ctx, name, fields); err != nil {
		return common.Collaborator("document store", err)
	}
	s.logger.Info("pages.upsert.ok", "doc", name, "fields", len(fields))
	return nil
}

// SetField updates one field of the named document, creating the document
// when absent.
func (s *Store) SetField(ctx context.Context, name, field string, value any) error {
	flat, err := content.FlattenValue(value)
	if err != nil {
		return err
	}
	if err := s.backend.Apply(ctx, name, map[string]any{field: flat}); err != nil {
		return common.Collaborator("document store", err)
	}
	s.logger.Info("pages.set_field.ok", "doc", name, "field", field)
	return nil
}

// AppendToListField appends newItems to the list held in field, flattening
// record-shaped items. The read-modify-write runs inside a backend
// transaction, so concurrent appenders cannot lose each other's updates.
// Appending to a non-list field fails with ErrTypeMismatch and leaves the
// field unchanged.
func (s *Store) AppendToListField(ctx context.Context, name, field string, newItems ...any) error {
	flatItems := make([]any, 0, len(newItems))
	for _, item := range newItems {
		fi, err := content.FlattenValue(item)
		if err != nil {
			return err
		}
		flatItems = append(flatItems, fi)
	}

	err := s.backend.ReadModifyWrite(ctx, name, field, func(current any, fieldExists bool) (any, error) {
		if !fieldExists {
			return nil, fmt.Errorf("field %q in %q: %w", field, name, common.ErrNotFound)
		}
		list, ok := current.([]any)
		if !ok {
			return nil, fmt.Errorf("field %q in %q: %w", field, name, common.ErrTypeMismatch)
		}
		return append(list, flatItems...), nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("pages.append.ok", "doc", name, "field", field, "items", len(flatItems))
	return nil
}

// GetDocument returns the named document's fields. Absence is an explicit
// ok=false result, never an error.
func (s *Store) GetDocument(ctx context.Context, name string) (map[string]any, bool, error) {
	fields, ok, err := s.backend.Get(ctx, name)
	if err != nil {
		return nil, false, common.Collaborator("document store", err)
	}
	return fields, ok, nil
}

// GetField returns one field of the named document. Absence of either the
// document or the field is an explicit ok=false result.
func (s *Store) GetField(ctx context.Context, name, field string) (any, bool, error) {
	fields, ok, err := s.GetDocument(ctx, name)
	if err != nil || !ok {
		return nil, false, err
	}
	value, ok := fields[field]
	return value, ok, nil
}

// Close releases the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
