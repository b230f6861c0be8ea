package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"vpp-configurator/internal/pkg/logger"
	"vpp-configurator/internal/repository/contract"
	"vpp-configurator/internal/repository/memory"
	"vpp-configurator/internal/repository/specification"
	"vpp-configurator/pkg/batch"
	"vpp-configurator/pkg/events"
	"vpp-configurator/pkg/validation"

	"github.com/stretchr/testify/require"
)

// countingRepo records reads and can be switched to fail them
type countingRepo struct {
	contract.CatalogRepository
	reads   atomic.Int32
	readErr error
}

func (r *countingRepo) FindAll(ctx context.Context, collection string, specs ...specification.Specification) ([]contract.Document, error) {
	r.reads.Add(1)
	if r.readErr != nil {
		return nil, r.readErr
	}
	return r.CatalogRepository.FindAll(ctx, collection, specs...)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

type fixture struct {
	store     *memory.CatalogRepository
	repo      *countingRepo
	cache     *memory.SnapshotCache
	loader    *CatalogLoader
	validator *validation.Validator
	events    *recordingPublisher
}

func fixtureFeatures() []contract.Document {
	return []contract.Document{
		{"id": "f-rust", "name": "RustGuard Pro", "description": "Corrosion module", "price": 399.0, "cost": 90.0, "column": 1, "position": 0},
		{"id": "f-rust-dup", "name": "rustguard pro", "description": "Duplicate entry", "price": 399.0, "cost": 90.0, "column": 1, "position": 1},
		{"id": "f-paint", "name": "Paint Sealant", "description": "Blocks oxidation", "price": 349.0, "cost": 70.0, "column": 1, "position": 2},
		{"id": "f-wind", "name": "Windshield Protection", "description": "Chip repair", "price": 795.0, "cost": 240.0, "column": 2, "position": 0},
		{"id": "f-tire", "name": "Tire & Wheel", "description": "Road hazard", "price": 899.0, "cost": 310.0, "column": 3, "position": 0},
		{"id": "f-dent", "name": "Dent Repair", "description": "Paintless dent repair", "price": 149.0, "cost": 40.0, "column": 4, "position": 1},
		{"id": "f-head", "name": "Headlight Restoration", "description": "Lens restoration", "price": 129.0, "cost": 25.0, "column": 4, "position": 0},
		{"id": "f-etch", "name": "Theft Etch", "description": "VIN etching", "price": 249.0, "cost": 20.0},
		{"id": "f-bad", "name": "", "description": "No name", "price": 10.0},
	}
}

func fixtureOptions() []contract.Document {
	return []contract.Document{
		{"id": "o-keys", "name": "Key Replacement", "description": "Smart key cover", "price": 195.0, "cost": 60.0, "column": 1, "position": 0, "isPublished": true},
		{"id": "o-hidden", "name": "Ceramic Coating", "description": "Ceramic layer", "price": 999.0, "cost": 300.0, "isNew": true},
	}
}

func fixturePackages() []contract.Document {
	return []contract.Document{
		{"id": "platinum", "name": "Platinum", "price": 3499.0, "cost": 1600.0, "tier_color": "#6B7280"},
		{"id": "gold", "name": "Gold", "price": 2399.0, "cost": 1100.0, "tier_color": "#C9A227"},
		{"id": "elite", "name": "Elite", "price": 2899.0, "cost": 1350.0, "is_recommended": true},
		{"id": "bronze", "name": "Bronze", "price": 999.0, "cost": 1200.0},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewCatalogRepository(batch.Config{MaxBatchSize: 3, MaxAttempts: 1})
	require.NoError(t, store.Upsert(ctx, contract.CollectionFeatures, fixtureFeatures()))
	require.NoError(t, store.Upsert(ctx, contract.CollectionAlaCarteOptions, fixtureOptions()))
	require.NoError(t, store.Upsert(ctx, contract.CollectionPackages, fixturePackages()))

	log := logger.NewNopLogger()
	repo := &countingRepo{CatalogRepository: store}
	cache := memory.NewSnapshotCache(time.Minute)
	v := validation.New(log)

	return &fixture{
		store:     store,
		repo:      repo,
		cache:     cache,
		loader:    NewCatalogLoader(repo, cache, v, log, time.Minute),
		validator: v,
		events:    &recordingPublisher{},
	}
}

func (f *fixture) admin() AdminService {
	return NewAdminService(f.repo, f.loader, f.validator, f.events, logger.NewNopLogger())
}

func (f *fixture) doc(t *testing.T, collection, id string) contract.Document {
	t.Helper()
	doc, err := f.store.FindOne(context.Background(), collection, id)
	require.NoError(t, err)
	require.NotNil(t, doc, "%s/%s", collection, id)
	return doc
}
