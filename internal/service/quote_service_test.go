package service

import (
	"context"
	"testing"
	"time"

	"vpp-configurator/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote_PackageWithOptionsAndAddons(t *testing.T) {
	f := newFixture(t)

	quote, err := NewQuoteService(f.loader).Quote(context.Background(), dto.QuoteRequest{
		PackageId: "gold",
		OptionIds: []string{"o-keys", "f-dent", "f-head", "o-keys"},
	})

	require.NoError(t, err)
	require.NotNil(t, quote.Package)
	assert.Equal(t, "Gold", quote.Package.Name)
	require.Len(t, quote.Options, 3, "repeated ids count once")
	assert.Equal(t, 2872.0, quote.TotalPrice)
	assert.Equal(t, "$2,872.00", quote.FormattedTotal)
	assert.Empty(t, quote.Warnings)
}

func TestQuote_RejectsUnknownSelections(t *testing.T) {
	f := newFixture(t)
	svc := NewQuoteService(f.loader)
	ctx := context.Background()

	_, err := svc.Quote(ctx, dto.QuoteRequest{PackageId: "diamond"})
	assert.ErrorIs(t, err, ErrPackageNotFound)

	_, err = svc.Quote(ctx, dto.QuoteRequest{OptionIds: []string{"o-hidden"}})
	assert.ErrorIs(t, err, ErrOptionNotFound, "unpublished options cannot be sold")

	_, err = svc.Quote(ctx, dto.QuoteRequest{OptionIds: []string{"f-rust"}})
	assert.ErrorIs(t, err, ErrOptionNotFound, "package features are not sold individually")
}

func TestQuote_Overrides(t *testing.T) {
	f := newFixture(t)

	quote, err := NewQuoteService(f.loader).Quote(context.Background(), dto.QuoteRequest{
		PackageId: "gold",
		OptionIds: []string{"o-keys"},
		Overrides: map[string]dto.PriceOverrideRequest{
			"gold":   {Price: f64(2000)},
			"o-keys": {Price: f64(10)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2010.0, quote.TotalPrice)
	require.Len(t, quote.Warnings, 1)
	assert.Equal(t, "Key Replacement is priced below cost ($10.00 < $60.00)", quote.Warnings[0])

	stored, ok := f.loader.Load(context.Background()).FindPackage("gold")
	require.True(t, ok)
	assert.Equal(t, 2399.0, stored.Price, "overrides never touch the catalog")
}

func TestQuote_Agreement(t *testing.T) {
	f := newFixture(t)
	svc := NewQuoteService(f.loader).(*quoteService)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	res, err := svc.Agreement(context.Background(), dto.QuoteRequest{
		PackageId: "elite",
		OptionIds: []string{"o-keys"},
		Customer:  dto.CustomerInfoRequest{Name: "Sam Lee", Year: "2023", Make: "Honda", Model: "Civic"},
	})

	require.NoError(t, err)
	assert.Contains(t, res.Text, "Date:     2026-03-01")
	assert.Contains(t, res.Text, "Vehicle:  2023 Honda Civic")
	assert.Contains(t, res.Text, "  - Elite: $2,899.00")
	assert.Contains(t, res.Text, "Total: $3,094.00")
	assert.NotContains(t, res.Text, "1,350", "costs are never printed")
}
