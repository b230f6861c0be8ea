package mapper

import (
	"vpp-configurator/internal/dto"
	"vpp-configurator/internal/entity"
	"vpp-configurator/pkg/pricing"
)

type QuoteMapper struct{}

func NewQuoteMapper() *QuoteMapper {
	return &QuoteMapper{}
}

func (m *QuoteMapper) ToCustomerInfo(req dto.CustomerInfoRequest) entity.CustomerInfo {
	return entity.CustomerInfo{Name: req.Name, Year: req.Year, Make: req.Make, Model: req.Model}
}

func (m *QuoteMapper) ToOverrides(req map[string]dto.PriceOverrideRequest) entity.PriceOverrides {
	if len(req) == 0 {
		return nil
	}
	out := make(entity.PriceOverrides, len(req))
	for id, o := range req {
		out[id] = entity.PriceOverride{Price: o.Price, Cost: o.Cost}
	}
	return out
}

// ToResponse never exposes costs; warnings are advisory
func (m *QuoteMapper) ToResponse(s pricing.Summary, warnings []string) dto.QuoteResponse {
	res := dto.QuoteResponse{
		Options:        make([]dto.QuoteLineResponse, 0, len(s.Options)),
		TotalPrice:     s.TotalPrice,
		FormattedTotal: pricing.FormatCurrency(s.TotalPrice),
		Warnings:       warnings,
	}
	if s.Package != nil {
		line := toLine(*s.Package)
		res.Package = &line
	}
	for _, l := range s.Options {
		res.Options = append(res.Options, toLine(l))
	}
	return res
}

func toLine(l pricing.Line) dto.QuoteLineResponse {
	return dto.QuoteLineResponse{
		Id:             l.Id,
		Name:           l.Name,
		Kind:           l.Kind,
		Price:          l.Price,
		FormattedPrice: pricing.FormatCurrency(l.Price),
	}
}
