package dto

import "vpp-configurator/pkg/validation"

type PackageResponse struct {
	Id            string            `json:"id"`
	Name          string            `json:"name"`
	Price         float64           `json:"price"`
	Cost          *float64          `json:"cost,omitempty"`
	IsRecommended bool              `json:"is_recommended"`
	TierColor     string            `json:"tier_color"`
	Features      []FeatureResponse `json:"features"`
}

// UpdatePackageRequest touches tier pricing and display only. Composition is
// derived from feature columns and cannot be set here.
type UpdatePackageRequest struct {
	Price         *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Cost          *float64 `json:"cost,omitempty" validate:"omitempty,gte=0"`
	IsRecommended *bool    `json:"is_recommended,omitempty"`
	TierColor     *string  `json:"tier_color,omitempty"`
}

type PackageWarning struct {
	PackageId string `json:"package_id"`
	Package   string `json:"package"`
	Message   string `json:"message"`
}

// CatalogReportResponse summarises the last catalog load for operators
type CatalogReportResponse struct {
	Degraded bool                     `json:"degraded"`
	Features int                      `json:"features"`
	Options  int                      `json:"options"`
	Packages int                      `json:"packages"`
	Dropped  []validation.RecordError `json:"dropped"`
}
