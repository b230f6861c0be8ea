package memory

import (
	"context"
	"sort"
	"sync"

	"vpp-configurator/internal/repository/contract"
	"vpp-configurator/internal/repository/document"
	"vpp-configurator/internal/repository/specification"
	"vpp-configurator/pkg/batch"
	"vpp-configurator/pkg/ordering"
)

// CatalogRepository is a process-local document store. It backs the API
// when no database is configured and the service tests.
type CatalogRepository struct {
	mu          sync.RWMutex
	collections map[string]map[string]contract.Document
	batch       batch.Config
}

func NewCatalogRepository(cfg batch.Config) *CatalogRepository {
	return &CatalogRepository{
		collections: map[string]map[string]contract.Document{},
		batch:       cfg,
	}
}

func (r *CatalogRepository) FindAll(ctx context.Context, collection string, specs ...specification.Specification) ([]contract.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := r.collections[collection]
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]contract.Document, 0, len(ids))
	for _, id := range ids {
		if specification.MatchAll(docs[id], specs...) {
			out = append(out, document.Clone(docs[id]))
		}
	}
	return out, nil
}

func (r *CatalogRepository) FindOne(ctx context.Context, collection, id string) (contract.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.collections[collection][id]
	if !ok {
		return nil, nil
	}
	return document.Clone(doc), nil
}

func (r *CatalogRepository) Upsert(ctx context.Context, collection string, docs []contract.Document) error {
	return batch.Commit(ctx, r.batch, docs, func(ctx context.Context, chunk []contract.Document) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		// validate the whole chunk before touching the store
		ids := make([]string, len(chunk))
		for i, doc := range chunk {
			id, err := document.ID(doc)
			if err != nil {
				return batch.Permanent(err)
			}
			ids[i] = id
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		bucket := r.bucket(collection)
		for i, doc := range chunk {
			bucket[ids[i]] = document.WithID(document.Clone(doc), ids[i])
		}
		return nil
	}, nil)
}

func (r *CatalogRepository) Merge(ctx context.Context, collection, id string, patch contract.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket := r.bucket(collection)
	doc, ok := bucket[id]
	if !ok {
		return document.NotFound(collection, id)
	}
	bucket[id] = document.WithID(document.MergePatch(doc, patch), id)
	return nil
}

func (r *CatalogRepository) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket := r.bucket(collection)
	if _, ok := bucket[id]; !ok {
		return document.NotFound(collection, id)
	}
	delete(bucket, id)
	return nil
}

func (r *CatalogRepository) ApplyPositionUpdates(ctx context.Context, collection string, updates []ordering.PositionUpdate) error {
	return batch.Commit(ctx, r.batch, updates, func(ctx context.Context, chunk []ordering.PositionUpdate) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.mu.Lock()
		defer r.mu.Unlock()

		bucket := r.bucket(collection)
		for _, u := range chunk {
			if _, ok := bucket[u.Id]; !ok {
				return batch.Permanent(document.NotFound(collection, u.Id))
			}
		}
		for _, u := range chunk {
			bucket[u.Id] = document.MergePatch(bucket[u.Id], document.PositionPatch(u))
		}
		return nil
	}, nil)
}

// caller holds the write lock
func (r *CatalogRepository) bucket(collection string) map[string]contract.Document {
	b, ok := r.collections[collection]
	if !ok {
		b = map[string]contract.Document{}
		r.collections[collection] = b
	}
	return b
}
