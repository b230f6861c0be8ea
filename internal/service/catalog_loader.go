package service

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"vpp-configurator/internal/entity"
	"vpp-configurator/internal/pkg/logger"
	"vpp-configurator/internal/repository/contract"
	"vpp-configurator/internal/repository/fallback"
	"vpp-configurator/pkg/ordering"
	"vpp-configurator/pkg/validation"
)

const CatalogSnapshotKey = "catalog"

// Catalog is a validated snapshot of every collection
type Catalog struct {
	Features []entity.Feature
	Options  []entity.AlaCarteOption
	Packages []entity.PackageTier
	Degraded bool
	Dropped  []validation.RecordError
}

// CatalogLoader reads every collection, substituting the built-in dataset
// for any collection the store cannot serve. It never returns an error.
type CatalogLoader struct {
	repo        contract.CatalogRepository
	cache       contract.SnapshotCache
	validator   *validation.Validator
	log         logger.ILogger
	ttl         time.Duration
	readTimeout time.Duration
}

func NewCatalogLoader(
	repo contract.CatalogRepository,
	cache contract.SnapshotCache,
	validator *validation.Validator,
	log logger.ILogger,
	ttl time.Duration,
) *CatalogLoader {
	return &CatalogLoader{
		repo:        repo,
		cache:       cache,
		validator:   validator,
		log:         log,
		ttl:         ttl,
		readTimeout: 5 * time.Second,
	}
}

// Raw returns the unvalidated snapshot, from cache when possible
func (l *CatalogLoader) Raw(ctx context.Context) *contract.RawSnapshot {
	if snap, ok := l.cache.Get(ctx, CatalogSnapshotKey); ok {
		return snap
	}

	snap := &contract.RawSnapshot{}
	for _, collection := range contract.Collections {
		docs := l.readCollection(ctx, collection, &snap.Degraded)
		switch collection {
		case contract.CollectionFeatures:
			snap.Features = docs
		case contract.CollectionAlaCarteOptions:
			snap.AlaCarteOptions = docs
		case contract.CollectionPackages:
			snap.Packages = docs
		}
	}

	// a degraded snapshot is retried on the next read instead of being pinned
	if !snap.Degraded {
		l.cache.Set(ctx, CatalogSnapshotKey, snap, l.ttl)
	}
	return snap
}

func (l *CatalogLoader) readCollection(ctx context.Context, collection string, degraded *bool) []contract.Document {
	readCtx, cancel := context.WithTimeout(ctx, l.readTimeout)
	defer cancel()

	docs, err := l.repo.FindAll(readCtx, collection)
	if err == nil {
		return docs
	}

	*degraded = true
	l.log.Warn("CATALOG", "Store read failed, serving fallback dataset", map[string]interface{}{
		"collection": collection,
		"error":      err.Error(),
	})
	docs, ferr := fallback.Collection(collection)
	if ferr != nil {
		l.log.Error("CATALOG", "Fallback dataset unavailable", map[string]interface{}{"collection": collection, "error": ferr.Error()})
		return []contract.Document{}
	}
	return docs
}

// Load returns the validated catalog
func (l *CatalogLoader) Load(ctx context.Context) Catalog {
	snap := l.Raw(ctx)

	features, ferrs := l.validator.Features(snap.Features)
	options, oerrs := l.validator.AlaCarteOptions(snap.AlaCarteOptions)
	packages, perrs := l.validator.Packages(snap.Packages)

	dropped := make([]validation.RecordError, 0, len(ferrs)+len(oerrs)+len(perrs))
	dropped = append(dropped, ferrs...)
	dropped = append(dropped, oerrs...)
	dropped = append(dropped, perrs...)

	return Catalog{
		Features: features,
		Options:  options,
		Packages: packages,
		Degraded: snap.Degraded,
		Dropped:  dropped,
	}
}

// Invalidate drops the cached snapshot after a local write
func (l *CatalogLoader) Invalidate(ctx context.Context) {
	l.cache.Delete(ctx, CatalogSnapshotKey)
}

// PackagesWithFeatures derives each tier's composition from the feature
// collection and orders tiers by price
func (c Catalog) PackagesWithFeatures() []entity.PackageTier {
	out := make([]entity.PackageTier, 0, len(c.Packages))
	for _, p := range c.Packages {
		p.Features = ordering.DeriveTierFeatures(p.Name, c.Features)
		out = append(out, p)
	}
	slices.SortStableFunc(out, func(a, b entity.PackageTier) int {
		if a.Price != b.Price {
			return cmp.Compare(a.Price, b.Price)
		}
		return strings.Compare(a.Id, b.Id)
	})
	return out
}

func (c Catalog) PublishedOptions() []entity.AlaCarteOption {
	published := make([]entity.AlaCarteOption, 0, len(c.Options))
	for _, o := range c.Options {
		if o.Published() {
			published = append(published, o)
		}
	}
	return ordering.SortFeatures(published)
}

func (c Catalog) FindFeature(id string) (entity.Feature, bool) {
	for _, f := range c.Features {
		if f.Id == id {
			return f, true
		}
	}
	return entity.Feature{}, false
}

func (c Catalog) FindOption(id string) (entity.AlaCarteOption, bool) {
	for _, o := range c.Options {
		if o.Id == id {
			return o, true
		}
	}
	return entity.AlaCarteOption{}, false
}

func (c Catalog) FindPackage(id string) (entity.PackageTier, bool) {
	for _, p := range c.PackagesWithFeatures() {
		if p.Id == id {
			return p, true
		}
	}
	return entity.PackageTier{}, false
}
