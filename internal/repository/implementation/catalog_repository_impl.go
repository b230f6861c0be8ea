package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"vpp-configurator/internal/model"
	"vpp-configurator/internal/repository/contract"
	"vpp-configurator/internal/repository/document"
	"vpp-configurator/internal/repository/scope"
	"vpp-configurator/internal/repository/specification"
	"vpp-configurator/pkg/batch"
	"vpp-configurator/pkg/ordering"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CatalogRepositoryImpl struct {
	db    *gorm.DB
	batch batch.Config
}

func NewCatalogRepository(db *gorm.DB, cfg batch.Config) contract.CatalogRepository {
	return &CatalogRepositoryImpl{
		db:    db,
		batch: cfg,
	}
}

func (r *CatalogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CatalogRepositoryImpl) FindAll(ctx context.Context, collection string, specs ...specification.Specification) ([]contract.Document, error) {
	var models []*model.CatalogDocument
	query := r.db.WithContext(ctx).Scopes(scope.InCollection(collection), scope.OrderByDocIDAsc)
	query = r.applySpecifications(query, specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}

	docs := make([]contract.Document, 0, len(models))
	for _, m := range models {
		doc, err := decode(m)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (r *CatalogRepositoryImpl) FindOne(ctx context.Context, collection, id string) (contract.Document, error) {
	var m model.CatalogDocument
	err := r.db.WithContext(ctx).Scopes(scope.InCollection(collection), scope.ByDocID(id)).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return decode(&m)
}

func (r *CatalogRepositoryImpl) Upsert(ctx context.Context, collection string, docs []contract.Document) error {
	return batch.Commit(ctx, r.batch, docs, func(ctx context.Context, chunk []contract.Document) error {
		models := make([]*model.CatalogDocument, 0, len(chunk))
		for _, doc := range chunk {
			m, err := encode(collection, doc)
			if err != nil {
				return batch.Permanent(err)
			}
			models = append(models, m)
		}
		return r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).Create(&models).Error
	}, nil)
}

func (r *CatalogRepositoryImpl) Merge(ctx context.Context, collection, id string, patch contract.Document) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return mergeInTx(tx, collection, id, patch)
	})
}

func (r *CatalogRepositoryImpl) Delete(ctx context.Context, collection, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(scope.InCollection(collection), scope.ByDocID(id)).
		Delete(&model.CatalogDocument{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return document.NotFound(collection, id)
	}
	return nil
}

// ApplyPositionUpdates commits one transaction per chunk
func (r *CatalogRepositoryImpl) ApplyPositionUpdates(ctx context.Context, collection string, updates []ordering.PositionUpdate) error {
	return batch.Commit(ctx, r.batch, updates, func(ctx context.Context, chunk []ordering.PositionUpdate) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, u := range chunk {
				if err := mergeInTx(tx, collection, u.Id, document.PositionPatch(u)); err != nil {
					if errors.Is(err, contract.ErrDocumentNotFound) {
						return batch.Permanent(err)
					}
					return err
				}
			}
			return nil
		})
	}, nil)
}

func mergeInTx(tx *gorm.DB, collection, id string, patch contract.Document) error {
	var m model.CatalogDocument
	err := tx.Scopes(scope.InCollection(collection), scope.ByDocID(id), scope.ForUpdate).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return document.NotFound(collection, id)
		}
		return err
	}

	current, err := decode(&m)
	if err != nil {
		return err
	}
	data, err := json.Marshal(document.WithID(document.MergePatch(current, patch), id))
	if err != nil {
		return err
	}
	return tx.Model(&m).Update("data", datatypes.JSON(data)).Error
}

func encode(collection string, doc contract.Document) (*model.CatalogDocument, error) {
	id, err := document.ID(doc)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(document.WithID(doc, id))
	if err != nil {
		return nil, fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}
	return &model.CatalogDocument{
		Collection: collection,
		DocId:      id,
		Data:       datatypes.JSON(data),
	}, nil
}

func decode(m *model.CatalogDocument) (contract.Document, error) {
	var doc contract.Document
	if err := json.Unmarshal(m.Data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", m.Collection, m.DocId, err)
	}
	return document.WithID(doc, m.DocId), nil
}
