package service

import (
	"context"
	"testing"

	"vpp-configurator/internal/pkg/logger"
	"vpp-configurator/internal/repository/contract"
	"vpp-configurator/internal/repository/memory"
	"vpp-configurator/pkg/batch"
	"vpp-configurator/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) migrations() MigrationService {
	return NewMigrationService(f.store, f.validator, f.events, logger.NewNopLogger())
}

func withLegacyLists(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.store.Merge(ctx, contract.CollectionPackages, "gold", contract.Document{"featureIds": []any{"f-etch", "ghost"}}))
	require.NoError(t, f.store.Merge(ctx, contract.CollectionPackages, "bronze", contract.Document{"featureIds": []string{"f-wind"}}))
}

func TestMigration_RetireFeatureIds_DryRun(t *testing.T) {
	f := newFixture(t)
	withLegacyLists(t, f)

	report, err := f.migrations().RetireFeatureIds(context.Background(), true)

	require.NoError(t, err)
	assert.Equal(t, 1, report.PackagesMigrated)
	assert.Equal(t, 1, report.FeaturesBackfilled)
	assert.Len(t, report.Skipped, 2)
	assert.Contains(t, f.doc(t, contract.CollectionPackages, "gold"), "featureIds", "dry run writes nothing")
	assert.NotContains(t, f.doc(t, contract.CollectionFeatures, "f-etch"), "column")
	assert.Empty(t, f.events.types())
}

func TestMigration_RetireFeatureIds(t *testing.T) {
	f := newFixture(t)
	withLegacyLists(t, f)

	_, err := f.migrations().RetireFeatureIds(context.Background(), false)
	require.NoError(t, err)

	etch := f.doc(t, contract.CollectionFeatures, "f-etch")
	assert.Equal(t, 1, etch["column"])
	assert.Equal(t, 3, etch["position"], "appended after the existing column 1 features")
	assert.NotContains(t, f.doc(t, contract.CollectionPackages, "gold"), "featureIds")
	assert.Contains(t, f.doc(t, contract.CollectionPackages, "bronze"), "featureIds", "unknown tiers are left for an operator")
	assert.Equal(t, []string{events.CatalogMigrated}, f.events.types())
}

func TestMigration_Normalize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Merge(ctx, contract.CollectionFeatures, "f-paint", contract.Document{"position": 40}))

	report, err := f.migrations().Normalize(ctx)

	require.NoError(t, err)
	assert.Equal(t, 8, report.Features, "invalid records are skipped")
	assert.Equal(t, 2, report.Options)
	assert.Equal(t, 2, f.doc(t, contract.CollectionFeatures, "f-paint")["position"])
	assert.Equal(t, 0, f.doc(t, contract.CollectionFeatures, "f-etch")["position"])
}

func TestMigration_SeedEmptyStore(t *testing.T) {
	store := memory.NewCatalogRepository(batch.Config{MaxBatchSize: 4, MaxAttempts: 1})
	log := logger.NewNopLogger()
	pub := &recordingPublisher{}
	svc := NewMigrationService(store, nil, pub, log)

	report, err := svc.Seed(context.Background())

	require.NoError(t, err)
	assert.Equal(t, SeedReport{Features: 10, Options: 4, Packages: 3}, *report)
	docs, err := store.FindAll(context.Background(), contract.CollectionPackages)
	require.NoError(t, err)
	assert.Len(t, docs, 3)
	assert.Equal(t, []string{events.CatalogMigrated}, pub.types())
}
