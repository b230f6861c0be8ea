package mapper

import (
	"vpp-configurator/internal/dto"
	"vpp-configurator/internal/entity"
	"vpp-configurator/internal/repository/contract"
)

type PackageMapper struct {
	features *FeatureMapper
}

func NewPackageMapper() *PackageMapper {
	return &PackageMapper{features: NewFeatureMapper()}
}

func (m *PackageMapper) ToResponse(p entity.PackageTier, withCost bool) dto.PackageResponse {
	res := dto.PackageResponse{
		Id:            p.Id,
		Name:          p.Name,
		Price:         p.Price,
		IsRecommended: p.IsRecommended,
		TierColor:     p.TierColor,
		Features:      m.features.ToResponses(p.Features, withCost),
	}
	if withCost {
		cost := p.Cost
		res.Cost = &cost
	}
	return res
}

func (m *PackageMapper) ToResponses(packages []entity.PackageTier, withCost bool) []dto.PackageResponse {
	out := make([]dto.PackageResponse, 0, len(packages))
	for _, p := range packages {
		out = append(out, m.ToResponse(p, withCost))
	}
	return out
}

// UpdatePatch only carries pricing and display fields; there is no way to
// write a feature list onto a package.
func (m *PackageMapper) UpdatePatch(req dto.UpdatePackageRequest) contract.Document {
	patch := contract.Document{}
	if req.Price != nil {
		patch["price"] = *req.Price
	}
	if req.Cost != nil {
		patch["cost"] = *req.Cost
	}
	if req.IsRecommended != nil {
		patch["is_recommended"] = *req.IsRecommended
	}
	if req.TierColor != nil {
		patch["tier_color"] = *req.TierColor
	}
	return patch
}
