package scope

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InCollection restricts a catalog_documents query to one collection
func InCollection(collection string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("collection = ?", collection)
	}
}

func ByDocID(id string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("doc_id = ?", id)
	}
}

func OrderByDocIDAsc(db *gorm.DB) *gorm.DB {
	return db.Order("doc_id ASC")
}

// ForUpdate locks the selected rows until the surrounding transaction ends
func ForUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
