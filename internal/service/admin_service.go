// FILE: internal/service/admin_service.go
// Service behind the admin catalog editor: feature CRUD, the drag-and-drop
// boards for features and a la carte options, and tier pricing.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vpp-configurator/internal/dto"
	"vpp-configurator/internal/entity"
	"vpp-configurator/internal/mapper"
	"vpp-configurator/internal/pkg/logger"
	"vpp-configurator/internal/repository/contract"
	"vpp-configurator/internal/repository/document"
	"vpp-configurator/pkg/events"
	"vpp-configurator/pkg/ordering"
	"vpp-configurator/pkg/pricing"
	"vpp-configurator/pkg/validation"

	"github.com/google/uuid"
)

type AdminService interface {
	// Features
	GetFeatureBoard(ctx context.Context) dto.Board[dto.FeatureResponse]
	CreateFeature(ctx context.Context, req dto.CreateFeatureRequest) (*dto.FeatureResponse, error)
	UpdateFeature(ctx context.Context, id string, req dto.UpdateFeatureRequest) (*dto.FeatureResponse, error)
	DeleteFeature(ctx context.Context, id string) error
	ReorderFeatures(ctx context.Context, req dto.ReorderRequest) (*dto.ReorderResponse, error)
	MoveFeature(ctx context.Context, id string, req dto.MoveFeatureRequest) (*dto.ReorderResponse, error)
	PromoteFeatureToOption(ctx context.Context, featureId string) (*dto.AlaCarteOptionResponse, error)

	// A la carte options
	GetOptionBoard(ctx context.Context) dto.Board[dto.AlaCarteOptionResponse]
	ReorderOptions(ctx context.Context, req dto.ReorderRequest) (*dto.ReorderResponse, error)
	PublishOption(ctx context.Context, id string, published bool) (*dto.AlaCarteOptionResponse, error)

	// Packages
	GetPackages(ctx context.Context) []dto.PackageResponse
	UpdatePackage(ctx context.Context, id string, req dto.UpdatePackageRequest) (*dto.PackageResponse, error)
	GetPackageWarnings(ctx context.Context) []dto.PackageWarning

	GetCatalogReport(ctx context.Context) dto.CatalogReportResponse
}

type adminService struct {
	repo          contract.CatalogRepository
	loader        *CatalogLoader
	validator     *validation.Validator
	events        EventPublisher
	logger        logger.ILogger
	featureMapper *mapper.FeatureMapper
	packageMapper *mapper.PackageMapper
}

func NewAdminService(
	repo contract.CatalogRepository,
	loader *CatalogLoader,
	validator *validation.Validator,
	eventPublisher EventPublisher,
	log logger.ILogger,
) AdminService {
	return &adminService{
		repo:          repo,
		loader:        loader,
		validator:     validator,
		events:        eventPublisher,
		logger:        log,
		featureMapper: mapper.NewFeatureMapper(),
		packageMapper: mapper.NewPackageMapper(),
	}
}

// --- Features ---

func (s *adminService) GetFeatureBoard(ctx context.Context) dto.Board[dto.FeatureResponse] {
	catalog := s.loader.Load(ctx)
	board := ordering.NormalizeGroupedPositions(ordering.GroupFeaturesByColumn(catalog.Features))
	return s.featureMapper.ToBoard(board)
}

func (s *adminService) CreateFeature(ctx context.Context, req dto.CreateFeatureRequest) (*dto.FeatureResponse, error) {
	f := s.featureMapper.FromCreateRequest(uuid.NewString(), req)
	if f.Column != nil {
		// new features land at the end of their column
		f.Position = entity.IntPtr(s.columnSize(ctx, *f.Column, ""))
	}

	doc := s.featureMapper.ToDocument(f)
	created, err := s.validateFeature(doc)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, contract.CollectionFeatures, []contract.Document{doc}); err != nil {
		return nil, fmt.Errorf("failed to create feature: %w", err)
	}

	s.logger.Info("ADMIN", "Feature created", map[string]interface{}{"id": created.Id, "name": created.Name})
	s.announce(ctx, events.FeatureCreated, contract.CollectionFeatures, created.Id)

	res := s.featureMapper.ToResponse(created, true)
	return &res, nil
}

func (s *adminService) UpdateFeature(ctx context.Context, id string, req dto.UpdateFeatureRequest) (*dto.FeatureResponse, error) {
	patch := s.featureMapper.UpdatePatch(req)
	if len(patch) == 0 {
		return nil, ErrEmptyPatch
	}

	current, err := s.repo.FindOne(ctx, contract.CollectionFeatures, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrFeatureNotFound
	}

	if req.Column != nil && *req.Column > 0 {
		existing, _ := s.validator.Features([]contract.Document{current})
		if len(existing) == 0 || existing[0].Column == nil || *existing[0].Column != *req.Column {
			patch["position"] = s.columnSize(ctx, *req.Column, id)
		}
	}

	updated, err := s.validateFeature(document.MergePatch(current, patch))
	if err != nil {
		return nil, err
	}
	if err := s.repo.Merge(ctx, contract.CollectionFeatures, id, patch); err != nil {
		if errors.Is(err, contract.ErrDocumentNotFound) {
			return nil, ErrFeatureNotFound
		}
		return nil, fmt.Errorf("failed to update feature: %w", err)
	}

	s.announce(ctx, events.FeatureUpdated, contract.CollectionFeatures, id)
	res := s.featureMapper.ToResponse(updated, true)
	return &res, nil
}

func (s *adminService) DeleteFeature(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, contract.CollectionFeatures, id); err != nil {
		if errors.Is(err, contract.ErrDocumentNotFound) {
			return ErrFeatureNotFound
		}
		return fmt.Errorf("failed to delete feature: %w", err)
	}

	s.logger.Info("ADMIN", "Feature deleted", map[string]interface{}{"id": id})
	s.announce(ctx, events.FeatureDeleted, contract.CollectionFeatures, id)
	return nil
}

func (s *adminService) ReorderFeatures(ctx context.Context, req dto.ReorderRequest) (*dto.ReorderResponse, error) {
	catalog := s.loader.Load(ctx)
	board, unknown := ordering.ArrangeBoard(ordering.GroupFeaturesByColumn(catalog.Features), s.featureMapper.ToLayout(req))
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIds, strings.Join(unknown, ", "))
	}
	return s.persistBoard(ctx, contract.CollectionFeatures, events.FeaturesReordered, ordering.BuildPositionUpdates(board))
}

func (s *adminService) MoveFeature(ctx context.Context, id string, req dto.MoveFeatureRequest) (*dto.ReorderResponse, error) {
	catalog := s.loader.Load(ctx)
	board, ok := ordering.MoveFeature(ordering.GroupFeaturesByColumn(catalog.Features), id, *req.Column, req.Index)
	if !ok {
		return nil, ErrFeatureNotFound
	}
	return s.persistBoard(ctx, contract.CollectionFeatures, events.FeaturesReordered, ordering.BuildPositionUpdates(board))
}

func (s *adminService) PromoteFeatureToOption(ctx context.Context, featureId string) (*dto.AlaCarteOptionResponse, error) {
	doc, err := s.repo.FindOne(ctx, contract.CollectionFeatures, featureId)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrFeatureNotFound
	}
	feature, err := s.validateFeature(doc)
	if err != nil {
		return nil, err
	}

	catalog := s.loader.Load(ctx)
	for _, o := range catalog.Options {
		if o.SourceFeatureId == featureId {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyPromoted, o.Id)
		}
	}

	option := entity.OptionFromFeature(uuid.NewString(), feature)
	if err := s.repo.Upsert(ctx, contract.CollectionAlaCarteOptions, []contract.Document{s.featureMapper.OptionToDocument(option)}); err != nil {
		return nil, fmt.Errorf("failed to create option: %w", err)
	}

	s.logger.Info("ADMIN", "Feature promoted to a la carte option", map[string]interface{}{"feature_id": featureId, "option_id": option.Id})
	s.announce(ctx, events.OptionCreated, contract.CollectionAlaCarteOptions, option.Id)

	res := s.featureMapper.OptionToResponse(option, true)
	return &res, nil
}

// --- A la carte options ---

func (s *adminService) GetOptionBoard(ctx context.Context) dto.Board[dto.AlaCarteOptionResponse] {
	catalog := s.loader.Load(ctx)
	board := ordering.NormalizeGroupedPositions(ordering.GroupFeaturesByColumn(catalog.Options))
	return s.featureMapper.OptionsToBoard(board)
}

func (s *adminService) ReorderOptions(ctx context.Context, req dto.ReorderRequest) (*dto.ReorderResponse, error) {
	catalog := s.loader.Load(ctx)
	board, unknown := ordering.ArrangeBoard(ordering.GroupFeaturesByColumn(catalog.Options), s.featureMapper.ToLayout(req))
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIds, strings.Join(unknown, ", "))
	}
	return s.persistBoard(ctx, contract.CollectionAlaCarteOptions, events.OptionsReordered, ordering.BuildPositionUpdates(board))
}

func (s *adminService) PublishOption(ctx context.Context, id string, published bool) (*dto.AlaCarteOptionResponse, error) {
	if err := s.repo.Merge(ctx, contract.CollectionAlaCarteOptions, id, contract.Document{"isPublished": published}); err != nil {
		if errors.Is(err, contract.ErrDocumentNotFound) {
			return nil, ErrOptionNotFound
		}
		return nil, fmt.Errorf("failed to publish option: %w", err)
	}
	s.announce(ctx, events.OptionPublished, contract.CollectionAlaCarteOptions, id)

	doc, err := s.repo.FindOne(ctx, contract.CollectionAlaCarteOptions, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrOptionNotFound
	}
	options, dropped := s.validator.AlaCarteOptions([]contract.Document{doc})
	if len(dropped) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRecord, dropped[0].Reason)
	}
	res := s.featureMapper.OptionToResponse(options[0], true)
	return &res, nil
}

// --- Packages ---

func (s *adminService) GetPackages(ctx context.Context) []dto.PackageResponse {
	catalog := s.loader.Load(ctx)
	return s.packageMapper.ToResponses(catalog.PackagesWithFeatures(), true)
}

func (s *adminService) UpdatePackage(ctx context.Context, id string, req dto.UpdatePackageRequest) (*dto.PackageResponse, error) {
	patch := s.packageMapper.UpdatePatch(req)
	if len(patch) == 0 {
		return nil, ErrEmptyPatch
	}
	if err := s.repo.Merge(ctx, contract.CollectionPackages, id, patch); err != nil {
		if errors.Is(err, contract.ErrDocumentNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to update package: %w", err)
	}
	s.announce(ctx, events.PackageUpdated, contract.CollectionPackages, id)

	pkg, ok := s.loader.Load(ctx).FindPackage(id)
	if !ok {
		return nil, ErrPackageNotFound
	}
	res := s.packageMapper.ToResponse(pkg, true)
	return &res, nil
}

// GetPackageWarnings surfaces tiers a customer would see as empty, and tiers
// priced below cost. Both are advisory.
func (s *adminService) GetPackageWarnings(ctx context.Context) []dto.PackageWarning {
	catalog := s.loader.Load(ctx)

	warnings := []dto.PackageWarning{}
	for _, p := range catalog.PackagesWithFeatures() {
		if !ordering.IsKnownTier(p.Name) {
			warnings = append(warnings, dto.PackageWarning{
				PackageId: p.Id,
				Package:   p.Name,
				Message:   fmt.Sprintf("%q is not a recognised tier name, so no features can be derived for it", p.Name),
			})
		} else if len(p.Features) == 0 {
			column, _ := ordering.GetTierColumn(p.Name)
			warnings = append(warnings, dto.PackageWarning{
				PackageId: p.Id,
				Package:   p.Name,
				Message:   fmt.Sprintf("no features are assigned to column %d", column),
			})
		}

		summary := pricing.Calculate(&p, nil, nil)
		for _, msg := range pricing.MarginWarnings(summary) {
			warnings = append(warnings, dto.PackageWarning{PackageId: p.Id, Package: p.Name, Message: msg})
		}
	}
	return warnings
}

func (s *adminService) GetCatalogReport(ctx context.Context) dto.CatalogReportResponse {
	catalog := s.loader.Load(ctx)
	return dto.CatalogReportResponse{
		Degraded: catalog.Degraded,
		Features: len(catalog.Features),
		Options:  len(catalog.Options),
		Packages: len(catalog.Packages),
		Dropped:  catalog.Dropped,
	}
}

// --- helpers ---

func (s *adminService) persistBoard(ctx context.Context, collection, eventType string, updates []ordering.PositionUpdate) (*dto.ReorderResponse, error) {
	if err := s.repo.ApplyPositionUpdates(ctx, collection, updates); err != nil {
		s.logger.Error("ADMIN", "Position update failed", map[string]interface{}{
			"collection": collection,
			"updates":    len(updates),
			"error":      err.Error(),
		})
		// a partial commit still changed the store
		s.announce(ctx, eventType, collection)
		return nil, fmt.Errorf("failed to save %s order: %w", collection, err)
	}

	s.announce(ctx, eventType, collection)
	res := s.featureMapper.ToReorderResponse(updates)
	return &res, nil
}

// columnSize counts the features in a column, ignoring excludeId
func (s *adminService) columnSize(ctx context.Context, column int, excludeId string) int {
	n := 0
	for _, f := range s.loader.Load(ctx).Features {
		if f.Id != excludeId && f.Column != nil && *f.Column == column {
			n++
		}
	}
	return n
}

func (s *adminService) validateFeature(doc contract.Document) (entity.Feature, error) {
	features, dropped := s.validator.Features([]contract.Document{doc})
	if len(dropped) > 0 {
		return entity.Feature{}, fmt.Errorf("%w: %s", ErrInvalidRecord, dropped[0].Reason)
	}
	return features[0], nil
}

// announce invalidates the local snapshot right away, then tells every other listener
func (s *adminService) announce(ctx context.Context, eventType, collection string, ids ...string) {
	s.loader.Invalidate(ctx)
	if err := s.events.Publish(ctx, events.NewCatalogEvent(eventType, collection, ids...)); err != nil {
		s.logger.Warn("ADMIN", "Failed to publish catalog event", map[string]interface{}{"type": eventType, "error": err.Error()})
	}
}
