package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/eventide/core"
	"github.com/poiesic/eventide/storage"
)

// EventRepository implements storage.EventRepository for BadgerDB.
type EventRepository struct {
	backend *Backend
}

var _ storage.EventRepository = (*EventRepository)(nil)

// NewRepository opens a BadgerDB database at path and returns an event
// repository backed by it. Closing the repository closes the database.
func NewRepository(path string) (storage.EventRepository, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return NewEventRepository(backend), nil
}

// NewEventRepository creates an event repository over an existing backend.
// The caller retains ownership of the backend's lifecycle when constructing
// the repository this way.
func NewEventRepository(backend *Backend) *EventRepository {
	return &EventRepository{backend: backend}
}

// Close closes the underlying backend.
func (r *EventRepository) Close() error {
	if r.backend.IsClosed() {
		return nil
	}
	return r.backend.Close()
}

// FindSimilar delegates to the backend.
func (r *EventRepository) FindSimilar(ctx context.Context, vector []float32, filter *core.FilterExpression, minSimilarity float32, limit int) ([]*core.SearchResult, error) {
	return r.backend.FindSimilar(ctx, vector, filter, minSimilarity, limit)
}

// WithTransaction delegates to the backend.
func (r *EventRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddEvents adds one or more event documents to storage.
// Document IDs are derived from contents, so adding the same listing twice
// overwrites the earlier copy in place rather than duplicating it.
func (r *EventRepository) AddEvents(ctx context.Context, docs ...*core.EventDocument) ([]*core.EventDocument, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Records round-trip at microsecond precision, so returned
		// timestamps must carry no finer resolution than stored ones.
		now := time.Now().UTC().Truncate(time.Microsecond)
		for _, doc := range docs {
			if doc.Id == 0 {
				doc.Id = core.IDFromContent(doc.Contents)
			}

			key := makeEventKey(doc.Id)

			// Upsert: keep the original insertion time and drop stale
			// index entries when the listing already exists.
			old, err := r.readEvent(tx, key)
			if err != nil {
				return err
			}
			if old != nil {
				doc.InsertedAt = old.InsertedAt
				if err := r.deleteMetadataIndex(tx, old); err != nil {
					return err
				}
			} else if doc.InsertedAt.IsZero() {
				doc.InsertedAt = now
			} else {
				doc.InsertedAt = doc.InsertedAt.Truncate(time.Microsecond)
			}
			doc.UpdatedAt = now

			value := storage.MarshalEventDocument(doc)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			if err := r.updateMetadataIndex(tx, doc); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return docs, err
}

// UpdateEvents updates existing event documents.
func (r *EventRepository) UpdateEvents(ctx context.Context, docs ...*core.EventDocument) ([]*core.EventDocument, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, doc := range docs {
			key := makeEventKey(doc.Id)

			old, err := r.readEvent(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			doc.InsertedAt = old.InsertedAt
			doc.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)

			value := storage.MarshalEventDocument(doc)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Refresh metadata indices if day or location changed
			if old.Day() != doc.Day() || old.Location() != doc.Location() {
				if err := r.deleteMetadataIndex(tx, old); err != nil {
					return err
				}
				if err := r.updateMetadataIndex(tx, doc); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return docs, err
}

// DeleteEvents removes event documents by their IDs.
func (r *EventRepository) DeleteEvents(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeEventKey(id)

			doc, err := r.readEvent(tx, key)
			if err != nil {
				return err
			}
			if doc == nil {
				return storage.ErrNotFound
			}

			if err := r.deleteMetadataIndex(tx, doc); err != nil {
				return err
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetEvent retrieves a single event document by ID.
func (r *EventRepository) GetEvent(ctx context.Context, id core.ID) (*core.EventDocument, error) {
	var result *core.EventDocument
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeEventKey(id)
		var err error
		result, err = r.readEvent(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetEvents retrieves multiple event documents by their IDs.
func (r *EventRepository) GetEvents(ctx context.Context, ids ...core.ID) ([]*core.EventDocument, error) {
	var result []*core.EventDocument
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeEventKey(id)
			doc, err := r.readEvent(tx, key)
			if err != nil {
				return err
			}
			if doc != nil {
				result = append(result, doc)
			}
		}
		return nil
	}, false)
	return result, err
}

// ListEventsByDay retrieves event documents indexed under the given weekday.
func (r *EventRepository) ListEventsByDay(ctx context.Context, day string) ([]*core.EventDocument, error) {
	return r.listByTermIndex(makePartialEventDayKey(day))
}

// ListEventsByLocation retrieves event documents indexed under the given venue.
func (r *EventRepository) ListEventsByLocation(ctx context.Context, location string) ([]*core.EventDocument, error) {
	return r.listByTermIndex(makePartialEventLocationKey(location))
}

// ListEvents retrieves all stored event documents in key order.
func (r *EventRepository) ListEvents(ctx context.Context) ([]*core.EventDocument, error) {
	var results []*core.EventDocument
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(eventRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var doc *core.EventDocument
			if err := iter.Item().Value(func(val []byte) error {
				var unmarshalErr error
				doc, unmarshalErr = storage.UnmarshalEventDocument(val)
				return unmarshalErr
			}); err != nil {
				return err
			}
			results = append(results, doc)
		}
		return nil
	}, false)
	return results, err
}

// CountEvents returns the total number of stored event documents.
func (r *EventRepository) CountEvents(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(eventRecordPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// Helper methods

// listByTermIndex scans one metadata index by partial key and resolves the
// indexed IDs to full documents.
func (r *EventRepository) listByTermIndex(partialKey []byte) ([]*core.EventDocument, error) {
	var results []*core.EventDocument
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(partialKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(partialKey) || slices.Compare(key[:len(partialKey)], partialKey) != 0 {
				break
			}

			var docID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				docID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			doc, err := r.readEvent(tx, makeEventKey(docID))
			if err != nil {
				return err
			}
			if doc != nil {
				results = append(results, doc)
			}
		}
		return nil
	}, false)

	return results, err
}

// readEvent reads an event document from the transaction.
func (r *EventRepository) readEvent(tx *badger.Txn, key []byte) (*core.EventDocument, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc *core.EventDocument
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		doc, unmarshalErr = storage.UnmarshalEventDocument(val)
		return unmarshalErr
	})
	return doc, err
}

// updateMetadataIndex adds day and location index entries for a document.
func (r *EventRepository) updateMetadataIndex(tx *badger.Txn, doc *core.EventDocument) error {
	id := storage.MarshalID(doc.Id)
	if day := doc.Day(); day != "" {
		if err := tx.Set(makeEventDayKey(day, doc.Id), id); err != nil {
			return err
		}
	}
	if location := doc.Location(); location != "" {
		if err := tx.Set(makeEventLocationKey(location, doc.Id), id); err != nil {
			return err
		}
	}
	return nil
}

// deleteMetadataIndex removes day and location index entries for a document.
func (r *EventRepository) deleteMetadataIndex(tx *badger.Txn, doc *core.EventDocument) error {
	if day := doc.Day(); day != "" {
		if err := tx.Delete(makeEventDayKey(day, doc.Id)); err != nil {
			return err
		}
	}
	if location := doc.Location(); location != "" {
		if err := tx.Delete(makeEventLocationKey(location, doc.Id)); err != nil {
			return err
		}
	}
	return nil
}
