package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CatalogDocument is one schemaless record of a catalog collection
type CatalogDocument struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Collection string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_catalog_collection_doc"`
	DocId      string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_catalog_collection_doc"`
	Data       datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

func (CatalogDocument) TableName() string {
	return "catalog_documents"
}
