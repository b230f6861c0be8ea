package service

import (
	"context"
	"errors"
	"testing"

	"vpp-configurator/internal/dto"
	"vpp-configurator/internal/entity"
	"vpp-configurator/internal/pkg/logger"
	"vpp-configurator/internal/repository/contract"
	"vpp-configurator/pkg/batch"
	"vpp-configurator/pkg/events"
	"vpp-configurator/pkg/ordering"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

func TestAdmin_GetFeatureBoard(t *testing.T) {
	f := newFixture(t)

	board := f.admin().GetFeatureBoard(context.Background())

	assert.Equal(t, []string{"f-rust", "f-rust-dup", "f-paint"}, featureIds(board.Column1))
	assert.Equal(t, []string{"f-head", "f-dent"}, featureIds(board.Column4))
	assert.Equal(t, []string{"f-etch"}, featureIds(board.Unassigned))
	require.NotNil(t, board.Column1[0].Cost, "admin views include cost")
	assert.Equal(t, 1, *board.Column4[1].Position)
}

func TestAdmin_CreateFeature(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.admin().CreateFeature(ctx, dto.CreateFeatureRequest{
		Name:        " Glass Coating ",
		Description: "Rain repellent",
		Price:       f64(199),
		Cost:        50,
		Column:      entity.IntPtr(1),
		Connector:   "OR",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.Id)
	assert.Equal(t, "Glass Coating", created.Name)
	assert.Equal(t, 3, *created.Position, "appended after the existing column items")
	assert.Equal(t, "OR", created.Connector)
	assert.Equal(t, []string{events.FeatureCreated}, f.events.types())

	board := f.admin().GetFeatureBoard(ctx)
	assert.Equal(t, created.Id, board.Column1[3].Id, "cached snapshot was invalidated")
}

func TestAdmin_CreateFeature_RejectsBlankName(t *testing.T) {
	f := newFixture(t)

	_, err := f.admin().CreateFeature(context.Background(), dto.CreateFeatureRequest{
		Name:        "   ",
		Description: "x",
		Price:       f64(1),
	})

	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.Empty(t, f.events.types())
}

func TestAdmin_UpdateFeature(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.admin()

	updated, err := svc.UpdateFeature(ctx, "f-rust", dto.UpdateFeatureRequest{
		Price:  f64(450),
		Column: entity.IntPtr(2),
	})

	require.NoError(t, err)
	assert.Equal(t, 450.0, updated.Price)
	assert.Equal(t, 2, *updated.Column)
	assert.Equal(t, 1, *updated.Position, "moved to the end of column 2")
	assert.Equal(t, "Corrosion module", updated.Description, "untouched fields survive")

	_, err = svc.UpdateFeature(ctx, "f-missing", dto.UpdateFeatureRequest{Price: f64(1)})
	assert.ErrorIs(t, err, ErrFeatureNotFound)

	_, err = svc.UpdateFeature(ctx, "f-rust", dto.UpdateFeatureRequest{})
	assert.ErrorIs(t, err, ErrEmptyPatch)

	_, err = svc.UpdateFeature(ctx, "f-rust", dto.UpdateFeatureRequest{Name: str("")})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestAdmin_UpdateFeature_Unassign(t *testing.T) {
	f := newFixture(t)

	updated, err := f.admin().UpdateFeature(context.Background(), "f-wind", dto.UpdateFeatureRequest{Column: entity.IntPtr(0)})

	require.NoError(t, err)
	assert.Nil(t, updated.Column)
	assert.NotContains(t, f.doc(t, contract.CollectionFeatures, "f-wind"), "column")
}

func TestAdmin_DeleteFeature(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.admin().DeleteFeature(ctx, "f-etch"))
	assert.ErrorIs(t, f.admin().DeleteFeature(ctx, "f-etch"), ErrFeatureNotFound)
	assert.Equal(t, []string{events.FeatureDeleted}, f.events.types())
}

func TestAdmin_ReorderFeatures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.admin().ReorderFeatures(ctx, dto.ReorderRequest{
		Column1: []string{"f-paint", "f-rust"},
		Column4: []string{"f-etch"},
	})

	require.NoError(t, err)
	assert.Len(t, res.Updates, 8)
	assert.Equal(t, 0, f.doc(t, contract.CollectionFeatures, "f-paint")["position"])
	assert.Equal(t, 1, f.doc(t, contract.CollectionFeatures, "f-rust")["position"])
	assert.Equal(t, 2, f.doc(t, contract.CollectionFeatures, "f-rust-dup")["position"])
	etch := f.doc(t, contract.CollectionFeatures, "f-etch")
	assert.Equal(t, 4, etch["column"])
	assert.Equal(t, 0, etch["position"])
	assert.Equal(t, []string{events.FeaturesReordered}, f.events.types())

	board := f.admin().GetFeatureBoard(ctx)
	assert.Equal(t, []string{"f-etch", "f-head", "f-dent"}, featureIds(board.Column4))
	assert.Empty(t, board.Unassigned)
}

func TestAdmin_ReorderFeatures_UnknownId(t *testing.T) {
	f := newFixture(t)

	_, err := f.admin().ReorderFeatures(context.Background(), dto.ReorderRequest{Column1: []string{"nope"}})

	assert.ErrorIs(t, err, ErrUnknownIds)
	assert.Contains(t, err.Error(), "nope")
}

// failingWrites aborts every position update after a partial commit
type failingWrites struct {
	*countingRepo
}

func (r failingWrites) ApplyPositionUpdates(_ context.Context, _ string, updates []ordering.PositionUpdate) error {
	return &batch.Error{FailedChunk: 1, CommittedChunks: 1, TotalChunks: 2, CommittedOps: 1, TotalOps: len(updates), Err: errors.New("quota")}
}

func TestAdmin_ReorderFeatures_ReportsPartialCommit(t *testing.T) {
	f := newFixture(t)
	svc := NewAdminService(failingWrites{f.repo}, f.loader, f.validator, f.events, logger.NewNopLogger())

	_, err := svc.MoveFeature(context.Background(), "f-dent", dto.MoveFeatureRequest{Column: entity.IntPtr(4), Index: 0})

	var berr *batch.Error
	require.True(t, errors.As(err, &berr))
	assert.True(t, berr.PartialCommit())
	assert.Equal(t, []string{events.FeaturesReordered}, f.events.types(), "partial writes are still announced")
}

func TestAdmin_MoveFeature(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.admin().MoveFeature(ctx, "f-etch", dto.MoveFeatureRequest{Column: entity.IntPtr(4), Index: 1})
	require.NoError(t, err)

	board := f.admin().GetFeatureBoard(ctx)
	assert.Equal(t, []string{"f-head", "f-etch", "f-dent"}, featureIds(board.Column4))

	_, err = f.admin().MoveFeature(ctx, "ghost", dto.MoveFeatureRequest{Column: entity.IntPtr(1)})
	assert.ErrorIs(t, err, ErrFeatureNotFound)
}

func TestAdmin_PromoteFeatureToOption(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	option, err := f.admin().PromoteFeatureToOption(ctx, "f-wind")

	require.NoError(t, err)
	assert.Equal(t, "f-wind", option.SourceFeatureId)
	assert.Equal(t, "Windshield Protection", option.Name)
	assert.False(t, option.IsPublished)
	assert.True(t, option.IsNew)
	assert.Nil(t, option.Column)

	_, err = f.admin().PromoteFeatureToOption(ctx, "f-wind")
	assert.ErrorIs(t, err, ErrAlreadyPromoted)

	_, err = f.admin().PromoteFeatureToOption(ctx, "ghost")
	assert.ErrorIs(t, err, ErrFeatureNotFound)
}

func TestAdmin_OptionBoardAndPublish(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.admin()

	board := svc.GetOptionBoard(ctx)
	require.Len(t, board.Column1, 1)
	require.Len(t, board.Unassigned, 1)

	published, err := svc.PublishOption(ctx, "o-hidden", true)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)
	assert.Len(t, NewStorefrontService(f.loader).GetAlaCarteCatalog(ctx), 2)

	_, err = svc.PublishOption(ctx, "ghost", true)
	assert.ErrorIs(t, err, ErrOptionNotFound)

	_, err = svc.ReorderOptions(ctx, dto.ReorderRequest{Column2: []string{"o-hidden"}})
	require.NoError(t, err)
	assert.Equal(t, 2, f.doc(t, contract.CollectionAlaCarteOptions, "o-hidden")["column"])
}

func TestAdmin_UpdatePackage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	updated, err := f.admin().UpdatePackage(ctx, "gold", dto.UpdatePackageRequest{Price: f64(2499), IsRecommended: boolPtr(true)})

	require.NoError(t, err)
	assert.Equal(t, 2499.0, updated.Price)
	assert.True(t, updated.IsRecommended)
	assert.Equal(t, []string{"f-rust", "f-paint"}, featureIds(updated.Features))
	assert.NotContains(t, f.doc(t, contract.CollectionPackages, "gold"), "features", "composition is never written")

	_, err = f.admin().UpdatePackage(ctx, "ghost", dto.UpdatePackageRequest{Price: f64(1)})
	assert.ErrorIs(t, err, ErrPackageNotFound)

	_, err = f.admin().UpdatePackage(ctx, "gold", dto.UpdatePackageRequest{})
	assert.ErrorIs(t, err, ErrEmptyPatch)
}

func TestAdmin_GetPackageWarnings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.admin().DeleteFeature(ctx, "f-tire"))

	warnings := f.admin().GetPackageWarnings(ctx)

	messages := map[string][]string{}
	for _, w := range warnings {
		messages[w.PackageId] = append(messages[w.PackageId], w.Message)
	}
	assert.Len(t, messages["bronze"], 2)
	assert.Contains(t, messages["bronze"][0], "not a recognised tier name")
	assert.Equal(t, "Bronze is priced below cost ($999.00 < $1,200.00)", messages["bronze"][1])
	assert.Equal(t, []string{"no features are assigned to column 3"}, messages["platinum"])
	assert.NotContains(t, messages, "gold")
}

func TestAdmin_GetCatalogReport(t *testing.T) {
	f := newFixture(t)

	report := f.admin().GetCatalogReport(context.Background())

	assert.False(t, report.Degraded)
	assert.Equal(t, 8, report.Features)
	require.Len(t, report.Dropped, 1)
	assert.Equal(t, "features", report.Dropped[0].Collection)
}

func boolPtr(v bool) *bool { return &v }
