package contract

import (
	"context"
	"errors"
	"time"

	"vpp-configurator/internal/repository/specification"
	"vpp-configurator/pkg/ordering"
)

const (
	CollectionFeatures        = "features"
	CollectionAlaCarteOptions = "alacarte_options"
	CollectionPackages        = "packages"
)

var Collections = []string{CollectionFeatures, CollectionAlaCarteOptions, CollectionPackages}

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrMissingDocId     = errors.New("document has no id")
)

// Document is a raw, unvalidated record. "id" carries the document key.
type Document = map[string]any

type CatalogRepository interface {
	FindAll(ctx context.Context, collection string, specs ...specification.Specification) ([]Document, error)
	FindOne(ctx context.Context, collection, id string) (Document, error)
	Upsert(ctx context.Context, collection string, docs []Document) error
	// Merge applies a JSON merge patch; nil values remove keys
	Merge(ctx context.Context, collection, id string, patch Document) error
	Delete(ctx context.Context, collection, id string) error
	ApplyPositionUpdates(ctx context.Context, collection string, updates []ordering.PositionUpdate) error
}

// RawSnapshot is every collection as read at one moment
type RawSnapshot struct {
	Features        []Document `json:"features"`
	AlaCarteOptions []Document `json:"alacarte_options"`
	Packages        []Document `json:"packages"`
	Degraded        bool       `json:"degraded"`
}

type SnapshotCache interface {
	Get(ctx context.Context, key string) (*RawSnapshot, bool)
	Set(ctx context.Context, key string, snap *RawSnapshot, ttl time.Duration)
	Delete(ctx context.Context, key string)
}
