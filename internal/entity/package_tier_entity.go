// FILE: internal/entity/package_tier_entity.go
package entity

// PackageTier is a named, priced bundle. Features is always derived from the
// feature collection at read time and is never persisted.
type PackageTier struct {
	Id            string
	Name          string // Gold, Elite, Platinum
	Price         float64
	Cost          float64
	Features      []Feature
	IsRecommended bool
	TierColor     string
}
