// FILE: internal/service/migration_service.go
// Operator maintenance jobs run by catalogctl. They read the store directly,
// never the fallback dataset, so they cannot write demo data back by accident.
package service

import (
	"context"
	"fmt"

	"vpp-configurator/internal/entity"
	"vpp-configurator/internal/pkg/logger"
	"vpp-configurator/internal/repository/contract"
	"vpp-configurator/internal/repository/fallback"
	"vpp-configurator/internal/repository/specification"
	"vpp-configurator/pkg/events"
	"vpp-configurator/pkg/ordering"
	"vpp-configurator/pkg/validation"
)

const legacyFeatureIdsKey = "featureIds"

type SeedReport struct {
	Features int
	Options  int
	Packages int
}

type RetireReport struct {
	PackagesMigrated   int
	FeaturesBackfilled int
	Skipped            []string
}

type NormalizeReport struct {
	Features int
	Options  int
}

type MigrationService interface {
	Seed(ctx context.Context) (*SeedReport, error)
	RetireFeatureIds(ctx context.Context, dryRun bool) (*RetireReport, error)
	Normalize(ctx context.Context) (*NormalizeReport, error)
}

type migrationService struct {
	repo      contract.CatalogRepository
	validator *validation.Validator
	events    EventPublisher
	logger    logger.ILogger
}

func NewMigrationService(repo contract.CatalogRepository, validator *validation.Validator, eventPublisher EventPublisher, log logger.ILogger) MigrationService {
	return &migrationService{repo: repo, validator: validator, events: eventPublisher, logger: log}
}

// Seed writes the built-in dataset through the batch committer
func (s *migrationService) Seed(ctx context.Context) (*SeedReport, error) {
	snap, err := fallback.Snapshot()
	if err != nil {
		return nil, err
	}

	report := &SeedReport{}
	for _, step := range []struct {
		collection string
		docs       []contract.Document
		count      *int
	}{
		{contract.CollectionFeatures, snap.Features, &report.Features},
		{contract.CollectionAlaCarteOptions, snap.AlaCarteOptions, &report.Options},
		{contract.CollectionPackages, snap.Packages, &report.Packages},
	} {
		if err := s.repo.Upsert(ctx, step.collection, step.docs); err != nil {
			return report, fmt.Errorf("seed %s: %w", step.collection, err)
		}
		*step.count = len(step.docs)
	}

	s.announce(ctx, "")
	return report, nil
}

// RetireFeatureIds migrates packages that still carry an explicit feature id
// list. Referenced features without a column are assigned the tier's column,
// then the list is removed so composition is derived from columns alone.
func (s *migrationService) RetireFeatureIds(ctx context.Context, dryRun bool) (*RetireReport, error) {
	packages, err := s.repo.FindAll(ctx, contract.CollectionPackages, specification.DataHasKey{Key: legacyFeatureIdsKey})
	if err != nil {
		return nil, err
	}
	rawFeatures, err := s.repo.FindAll(ctx, contract.CollectionFeatures)
	if err != nil {
		return nil, err
	}
	features, _ := s.validator.Features(rawFeatures)

	byId := make(map[string]entity.Feature, len(features))
	nextPosition := map[int]int{}
	for _, f := range features {
		byId[f.Id] = f
		if c, ok := ordering.ColumnOf(f); ok {
			nextPosition[c]++
		}
	}

	report := &RetireReport{Skipped: []string{}}
	var backfill []ordering.PositionUpdate
	var migrated []string
	for _, doc := range packages {
		pkgId, _ := doc["id"].(string)
		name, _ := doc["name"].(string)
		column, known := ordering.GetTierColumn(name)
		if !known {
			report.Skipped = append(report.Skipped, fmt.Sprintf("package %s: unknown tier %q", pkgId, name))
			continue
		}

		for _, id := range legacyRefs(doc[legacyFeatureIdsKey]) {
			f, ok := byId[id]
			if !ok {
				report.Skipped = append(report.Skipped, fmt.Sprintf("package %s: feature %q not found", pkgId, id))
				continue
			}
			if f.Column != nil {
				continue
			}
			backfill = append(backfill, ordering.PositionUpdate{
				Id:       id,
				Position: nextPosition[column],
				Column:   entity.IntPtr(column),
			})
			nextPosition[column]++
			// first tier to claim a feature wins
			f.Column = entity.IntPtr(column)
			byId[id] = f
		}
		migrated = append(migrated, pkgId)
	}

	report.FeaturesBackfilled = len(backfill)
	report.PackagesMigrated = len(migrated)
	if dryRun {
		return report, nil
	}

	if err := s.repo.ApplyPositionUpdates(ctx, contract.CollectionFeatures, backfill); err != nil {
		return report, fmt.Errorf("backfill feature columns: %w", err)
	}
	for _, id := range migrated {
		if err := s.repo.Merge(ctx, contract.CollectionPackages, id, contract.Document{legacyFeatureIdsKey: nil}); err != nil {
			return report, fmt.Errorf("strip %s from package %s: %w", legacyFeatureIdsKey, id, err)
		}
	}

	s.logger.Info("MIGRATION", "Retired package feature id lists", map[string]interface{}{
		"packages": report.PackagesMigrated,
		"features": report.FeaturesBackfilled,
		"skipped":  len(report.Skipped),
	})
	s.announce(ctx, contract.CollectionPackages)
	return report, nil
}

// Normalize rewrites every board position as its index within its column
func (s *migrationService) Normalize(ctx context.Context) (*NormalizeReport, error) {
	rawFeatures, err := s.repo.FindAll(ctx, contract.CollectionFeatures)
	if err != nil {
		return nil, err
	}
	rawOptions, err := s.repo.FindAll(ctx, contract.CollectionAlaCarteOptions)
	if err != nil {
		return nil, err
	}
	features, _ := s.validator.Features(rawFeatures)
	options, _ := s.validator.AlaCarteOptions(rawOptions)

	featureUpdates := ordering.BuildPositionUpdates(ordering.NormalizeGroupedPositions(ordering.GroupFeaturesByColumn(features)))
	optionUpdates := ordering.BuildPositionUpdates(ordering.NormalizeGroupedPositions(ordering.GroupFeaturesByColumn(options)))

	if err := s.repo.ApplyPositionUpdates(ctx, contract.CollectionFeatures, featureUpdates); err != nil {
		return nil, fmt.Errorf("normalize features: %w", err)
	}
	if err := s.repo.ApplyPositionUpdates(ctx, contract.CollectionAlaCarteOptions, optionUpdates); err != nil {
		return nil, fmt.Errorf("normalize options: %w", err)
	}

	s.announce(ctx, "")
	return &NormalizeReport{Features: len(featureUpdates), Options: len(optionUpdates)}, nil
}

func (s *migrationService) announce(ctx context.Context, collection string) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, events.NewCatalogEvent(events.CatalogMigrated, collection)); err != nil {
		s.logger.Warn("MIGRATION", "Failed to publish catalog event", map[string]interface{}{"error": err.Error()})
	}
}

func legacyRefs(v any) []string {
	switch refs := v.(type) {
	case []string:
		return refs
	case []any:
		out := make([]string, 0, len(refs))
		for _, ref := range refs {
			if id, ok := ref.(string); ok {
				out = append(out, id)
			}
		}
		return out
	}
	return nil
}
