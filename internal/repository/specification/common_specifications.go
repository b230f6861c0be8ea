package specification

import (
	"fmt"
	"slices"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ByDocIDs filters by a list of document keys
type ByDocIDs struct {
	IDs []string
}

func (s ByDocIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("doc_id IN ?", s.IDs)
}

func (s ByDocIDs) Match(doc map[string]any) bool {
	id, _ := doc["id"].(string)
	return slices.Contains(s.IDs, id)
}

// DataHasKey keeps documents carrying the given top-level field
type DataHasKey struct {
	Key string
}

func (s DataHasKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(datatypes.JSONQuery("data").HasKey(s.Key))
}

func (s DataHasKey) Match(doc map[string]any) bool {
	_, ok := doc[s.Key]
	return ok
}

// DataFieldEquals filters on a scalar top-level field
type DataFieldEquals struct {
	Key   string
	Value interface{}
}

func (s DataFieldEquals) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(datatypes.JSONQuery("data").Equals(s.Value, s.Key))
}

func (s DataFieldEquals) Match(doc map[string]any) bool {
	v, ok := doc[s.Key]
	if !ok {
		return false
	}
	return scalarEqual(v, s.Value)
}

// JSON numbers decode as float64, so numbers compare by value
func scalarEqual(a, b any) bool {
	fa, aNum := asFloat(a)
	fb, bNum := asFloat(b)
	if aNum && bNum {
		return fa == fb
	}
	return fmt.Sprint(a) == fmt.Sprint(b) && fmt.Sprintf("%T", a) == fmt.Sprintf("%T", b)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
