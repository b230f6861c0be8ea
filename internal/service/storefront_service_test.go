package service

import (
	"context"
	"errors"
	"testing"

	"vpp-configurator/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func featureIds(xs []dto.FeatureResponse) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		out = append(out, x.Id)
	}
	return out
}

func TestStorefront_GetPackages(t *testing.T) {
	f := newFixture(t)
	svc := NewStorefrontService(f.loader)

	packages := svc.GetPackages(context.Background())

	require.Len(t, packages, 4)
	assert.Equal(t, []string{"bronze", "gold", "elite", "platinum"},
		[]string{packages[0].Id, packages[1].Id, packages[2].Id, packages[3].Id}, "tiers are ordered by price")

	gold := packages[1]
	assert.Equal(t, []string{"f-rust", "f-paint"}, featureIds(gold.Features), "duplicate names collapse to the first occurrence")
	assert.Nil(t, gold.Cost)
	assert.Nil(t, gold.Features[0].Cost)
	assert.Empty(t, packages[0].Features, "unknown tier has no derivable composition")
	assert.True(t, packages[2].IsRecommended)
}

func TestStorefront_GetPopularAddons(t *testing.T) {
	f := newFixture(t)

	addons := NewStorefrontService(f.loader).GetPopularAddons(context.Background())

	assert.Equal(t, []string{"f-head", "f-dent"}, featureIds(addons))
}

func TestStorefront_GetAlaCarteCatalog_PublishedOnly(t *testing.T) {
	f := newFixture(t)

	options := NewStorefrontService(f.loader).GetAlaCarteCatalog(context.Background())

	require.Len(t, options, 1)
	assert.Equal(t, "o-keys", options[0].Id)
	assert.True(t, options[0].IsPublished)
}

func TestCatalogLoader_CachesHealthySnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.loader.Load(ctx)
	reads := f.repo.reads.Load()
	f.loader.Load(ctx)

	assert.False(t, first.Degraded)
	assert.Equal(t, int32(3), reads, "one read per collection")
	assert.Equal(t, reads, f.repo.reads.Load(), "second load is served from cache")
	require.Len(t, first.Dropped, 1)
	assert.Equal(t, "f-bad", first.Dropped[0].Id)
}

func TestCatalogLoader_FallsBackOnReadFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.readErr = errors.New("permission denied")
	ctx := context.Background()

	catalog := f.loader.Load(ctx)

	assert.True(t, catalog.Degraded)
	assert.Len(t, catalog.Packages, 3)
	assert.NotEmpty(t, catalog.Features)
	for _, p := range catalog.PackagesWithFeatures() {
		assert.NotEmpty(t, p.Features, p.Name)
	}

	f.loader.Load(ctx)
	assert.Equal(t, int32(6), f.repo.reads.Load(), "degraded snapshots are not cached")

	f.repo.readErr = nil
	assert.False(t, f.loader.Load(ctx).Degraded, "store recovery is picked up on the next read")
}
