// FILE: internal/dto/feature_dto.go
// DTOs for the feature catalog and the admin boards
package dto

// --- Feature Catalog DTOs ---

// CreateFeatureRequest adds a feature. Column 0 or absent leaves it unassigned.
type CreateFeatureRequest struct {
	Name         string   `json:"name" validate:"required,nonblank"`
	Description  string   `json:"description" validate:"required,nonblank"`
	Points       []string `json:"points"`
	UseCases     []string `json:"useCases"`
	Price        *float64 `json:"price" validate:"required,gte=0"`
	Cost         float64  `json:"cost" validate:"gte=0"`
	Warranty     string   `json:"warranty,omitempty"`
	Column       *int     `json:"column,omitempty" validate:"omitempty,min=0,max=4"`
	Connector    string   `json:"connector,omitempty" validate:"omitempty,oneof=AND OR"`
	ImageUrl     string   `json:"imageUrl,omitempty" validate:"omitempty,url"`
	ThumbnailUrl string   `json:"thumbnailUrl,omitempty" validate:"omitempty,url"`
	VideoUrl     string   `json:"videoUrl,omitempty" validate:"omitempty,url"`
}

// UpdateFeatureRequest is a partial update. Column 0 unassigns the feature.
// Board placement other than the column goes through reorder and move.
type UpdateFeatureRequest struct {
	Name         *string   `json:"name,omitempty" validate:"omitempty,nonblank"`
	Description  *string   `json:"description,omitempty" validate:"omitempty,nonblank"`
	Points       *[]string `json:"points,omitempty"`
	UseCases     *[]string `json:"useCases,omitempty"`
	Price        *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Cost         *float64  `json:"cost,omitempty" validate:"omitempty,gte=0"`
	Warranty     *string   `json:"warranty,omitempty"`
	Column       *int      `json:"column,omitempty" validate:"omitempty,min=0,max=4"`
	Connector    *string   `json:"connector,omitempty" validate:"omitempty,oneof=AND OR"`
	ImageUrl     *string   `json:"imageUrl,omitempty" validate:"omitempty,url"`
	ThumbnailUrl *string   `json:"thumbnailUrl,omitempty" validate:"omitempty,url"`
	VideoUrl     *string   `json:"videoUrl,omitempty" validate:"omitempty,url"`
}

// FeatureResponse is shared by the storefront and the admin board. Cost is
// only filled in for admin responses.
type FeatureResponse struct {
	Id           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Points       []string `json:"points"`
	UseCases     []string `json:"useCases"`
	Price        float64  `json:"price"`
	Cost         *float64 `json:"cost,omitempty"`
	Warranty     string   `json:"warranty,omitempty"`
	Column       *int     `json:"column,omitempty"`
	Position     *int     `json:"position,omitempty"`
	Connector    string   `json:"connector"`
	ImageUrl     string   `json:"imageUrl,omitempty"`
	ThumbnailUrl string   `json:"thumbnailUrl,omitempty"`
	VideoUrl     string   `json:"videoUrl,omitempty"`
}

type AlaCarteOptionResponse struct {
	FeatureResponse
	IsNew           bool   `json:"isNew"`
	IsPublished     bool   `json:"isPublished"`
	SourceFeatureId string `json:"sourceFeatureId,omitempty"`
}

// --- Board DTOs ---

// Board mirrors the admin drag-and-drop layout: columns 1-4 plus unassigned
type Board[T any] struct {
	Column1    []T `json:"1"`
	Column2    []T `json:"2"`
	Column3    []T `json:"3"`
	Column4    []T `json:"4"`
	Unassigned []T `json:"unassigned"`
}

// ReorderRequest lists ids per bucket in their new order. Listed ids move into
// the bucket they are listed under; unlisted items keep their place after them.
type ReorderRequest = Board[string]

type MoveFeatureRequest struct {
	Column *int `json:"column" validate:"required,min=0,max=4"`
	Index  int  `json:"index" validate:"gte=0"`
}

type PositionUpdateResponse struct {
	Id        string  `json:"id"`
	Position  int     `json:"position"`
	Column    *int    `json:"column,omitempty"`
	Connector *string `json:"connector,omitempty"`
}

type ReorderResponse struct {
	Updates []PositionUpdateResponse `json:"updates"`
}

type PublishOptionRequest struct {
	Published *bool `json:"published" validate:"required"`
}
