package specification

import "gorm.io/gorm"

// Specification narrows a catalog query. Apply scopes a GORM query and
// Match evaluates the same predicate against a decoded document, so the
// in-memory store honours every specification the SQL store does.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
	Match(doc map[string]any) bool
}

// MatchAll reports whether doc satisfies every spec
func MatchAll(doc map[string]any, specs ...Specification) bool {
	for _, spec := range specs {
		if !spec.Match(doc) {
			return false
		}
	}
	return true
}
