package service

import (
	"context"

	"vpp-configurator/internal/dto"
	"vpp-configurator/internal/mapper"
	"vpp-configurator/pkg/ordering"
)

// StorefrontService serves the customer-facing catalog. Costs are never exposed.
type StorefrontService interface {
	GetPackages(ctx context.Context) []dto.PackageResponse
	GetPopularAddons(ctx context.Context) []dto.FeatureResponse
	GetAlaCarteCatalog(ctx context.Context) []dto.AlaCarteOptionResponse
}

type storefrontService struct {
	loader        *CatalogLoader
	featureMapper *mapper.FeatureMapper
	packageMapper *mapper.PackageMapper
}

func NewStorefrontService(loader *CatalogLoader) StorefrontService {
	return &storefrontService{
		loader:        loader,
		featureMapper: mapper.NewFeatureMapper(),
		packageMapper: mapper.NewPackageMapper(),
	}
}

func (s *storefrontService) GetPackages(ctx context.Context) []dto.PackageResponse {
	catalog := s.loader.Load(ctx)
	return s.packageMapper.ToResponses(catalog.PackagesWithFeatures(), false)
}

func (s *storefrontService) GetPopularAddons(ctx context.Context) []dto.FeatureResponse {
	catalog := s.loader.Load(ctx)
	return s.featureMapper.ToResponses(ordering.GetPopularAddons(catalog.Features), false)
}

func (s *storefrontService) GetAlaCarteCatalog(ctx context.Context) []dto.AlaCarteOptionResponse {
	catalog := s.loader.Load(ctx)
	return s.featureMapper.OptionsToResponses(catalog.PublishedOptions(), false)
}
