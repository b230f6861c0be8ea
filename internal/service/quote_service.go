package service

import (
	"context"
	"fmt"
	"time"

	"vpp-configurator/internal/dto"
	"vpp-configurator/internal/entity"
	"vpp-configurator/internal/mapper"
	"vpp-configurator/pkg/ordering"
	"vpp-configurator/pkg/pricing"
)

type QuoteService interface {
	Quote(ctx context.Context, req dto.QuoteRequest) (*dto.QuoteResponse, error)
	Agreement(ctx context.Context, req dto.QuoteRequest) (*dto.AgreementResponse, error)
}

type quoteService struct {
	loader *CatalogLoader
	mapper *mapper.QuoteMapper
	now    func() time.Time
}

func NewQuoteService(loader *CatalogLoader) QuoteService {
	return &quoteService{
		loader: loader,
		mapper: mapper.NewQuoteMapper(),
		now:    time.Now,
	}
}

func (s *quoteService) Quote(ctx context.Context, req dto.QuoteRequest) (*dto.QuoteResponse, error) {
	summary, err := s.summarize(ctx, req)
	if err != nil {
		return nil, err
	}
	res := s.mapper.ToResponse(summary, pricing.MarginWarnings(summary))
	return &res, nil
}

func (s *quoteService) Agreement(ctx context.Context, req dto.QuoteRequest) (*dto.AgreementResponse, error) {
	summary, err := s.summarize(ctx, req)
	if err != nil {
		return nil, err
	}
	date := req.Date
	if date == "" {
		date = s.now().Format("2006-01-02")
	}
	text := pricing.RenderAgreement(s.mapper.ToCustomerInfo(req.Customer), summary, date)
	return &dto.AgreementResponse{Text: text}, nil
}

// summarize resolves the selection against the live catalog. Selectable
// items are published options and popular add-ons; each id counts once.
func (s *quoteService) summarize(ctx context.Context, req dto.QuoteRequest) (pricing.Summary, error) {
	catalog := s.loader.Load(ctx)

	var pkg *entity.PackageTier
	if req.PackageId != "" {
		p, ok := catalog.FindPackage(req.PackageId)
		if !ok {
			return pricing.Summary{}, fmt.Errorf("%w: %s", ErrPackageNotFound, req.PackageId)
		}
		pkg = &p
	}

	addons := make(map[string]entity.Feature)
	for _, f := range ordering.GetPopularAddons(catalog.Features) {
		addons[f.Id] = f
	}

	selected := make([]entity.AlaCarteOption, 0, len(req.OptionIds))
	seen := make(map[string]struct{}, len(req.OptionIds))
	for _, id := range req.OptionIds {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if o, ok := catalog.FindOption(id); ok && o.Published() {
			selected = append(selected, o)
			continue
		}
		if f, ok := addons[id]; ok {
			selected = append(selected, entity.AlaCarteOption{Feature: f})
			continue
		}
		return pricing.Summary{}, fmt.Errorf("%w: %s", ErrOptionNotFound, id)
	}

	return pricing.Calculate(pkg, selected, s.mapper.ToOverrides(req.Overrides)), nil
}
