// FILE: internal/mapper/feature_mapper.go
// Mapper for Feature / AlaCarteOption entity <-> document and response conversion
package mapper

import (
	"strings"

	"vpp-configurator/internal/dto"
	"vpp-configurator/internal/entity"
	"vpp-configurator/internal/repository/contract"
	"vpp-configurator/pkg/ordering"
)

type FeatureMapper struct{}

func NewFeatureMapper() *FeatureMapper {
	return &FeatureMapper{}
}

// ToResponse maps a feature; withCost exposes the internal cost for admin views
func (m *FeatureMapper) ToResponse(f entity.Feature, withCost bool) dto.FeatureResponse {
	res := dto.FeatureResponse{
		Id:           f.Id,
		Name:         f.Name,
		Description:  f.Description,
		Points:       nonNil(f.Points),
		UseCases:     nonNil(f.UseCases),
		Price:        f.Price,
		Warranty:     f.Warranty,
		Column:       f.Column,
		Position:     f.Position,
		Connector:    string(f.EffectiveConnector()),
		ImageUrl:     f.ImageUrl,
		ThumbnailUrl: f.ThumbnailUrl,
		VideoUrl:     f.VideoUrl,
	}
	if withCost {
		cost := f.Cost
		res.Cost = &cost
	}
	return res
}

func (m *FeatureMapper) ToResponses(features []entity.Feature, withCost bool) []dto.FeatureResponse {
	out := make([]dto.FeatureResponse, 0, len(features))
	for _, f := range features {
		out = append(out, m.ToResponse(f, withCost))
	}
	return out
}

func (m *FeatureMapper) OptionToResponse(o entity.AlaCarteOption, withCost bool) dto.AlaCarteOptionResponse {
	return dto.AlaCarteOptionResponse{
		FeatureResponse: m.ToResponse(o.Feature, withCost),
		IsNew:           o.IsNew != nil && *o.IsNew,
		IsPublished:     o.Published(),
		SourceFeatureId: o.SourceFeatureId,
	}
}

func (m *FeatureMapper) OptionsToResponses(options []entity.AlaCarteOption, withCost bool) []dto.AlaCarteOptionResponse {
	out := make([]dto.AlaCarteOptionResponse, 0, len(options))
	for _, o := range options {
		out = append(out, m.OptionToResponse(o, withCost))
	}
	return out
}

func (m *FeatureMapper) ToBoard(g ordering.Grouped[entity.Feature]) dto.Board[dto.FeatureResponse] {
	return mapBoard(g, func(f entity.Feature) dto.FeatureResponse { return m.ToResponse(f, true) })
}

func (m *FeatureMapper) OptionsToBoard(g ordering.Grouped[entity.AlaCarteOption]) dto.Board[dto.AlaCarteOptionResponse] {
	return mapBoard(g, func(o entity.AlaCarteOption) dto.AlaCarteOptionResponse { return m.OptionToResponse(o, true) })
}

// ToLayout converts a reorder request into per-bucket id lists
func (m *FeatureMapper) ToLayout(req dto.ReorderRequest) ordering.Grouped[string] {
	return ordering.Grouped[string]{
		Column1:    req.Column1,
		Column2:    req.Column2,
		Column3:    req.Column3,
		Column4:    req.Column4,
		Unassigned: req.Unassigned,
	}
}

func (m *FeatureMapper) ToReorderResponse(updates []ordering.PositionUpdate) dto.ReorderResponse {
	out := make([]dto.PositionUpdateResponse, 0, len(updates))
	for _, u := range updates {
		res := dto.PositionUpdateResponse{Id: u.Id, Position: u.Position, Column: u.Column}
		if u.Connector != nil {
			c := string(*u.Connector)
			res.Connector = &c
		}
		out = append(out, res)
	}
	return dto.ReorderResponse{Updates: out}
}

// FromCreateRequest builds a new feature. Column 0 means unassigned.
func (m *FeatureMapper) FromCreateRequest(id string, req dto.CreateFeatureRequest) entity.Feature {
	f := entity.Feature{
		Id:           id,
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		Points:       nonNil(req.Points),
		UseCases:     nonNil(req.UseCases),
		Cost:         req.Cost,
		Warranty:     req.Warranty,
		ImageUrl:     req.ImageUrl,
		ThumbnailUrl: req.ThumbnailUrl,
		VideoUrl:     req.VideoUrl,
	}
	if req.Price != nil {
		f.Price = *req.Price
	}
	if req.Column != nil && *req.Column > 0 {
		f.Column = entity.IntPtr(*req.Column)
	}
	if c, ok := entity.ParseConnector(req.Connector); ok {
		f.Connector = c
	}
	return f
}

// UpdatePatch converts a partial update into a merge patch
func (m *FeatureMapper) UpdatePatch(req dto.UpdateFeatureRequest) contract.Document {
	patch := contract.Document{}
	if req.Name != nil {
		patch["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		patch["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Points != nil {
		patch["points"] = nonNil(*req.Points)
	}
	if req.UseCases != nil {
		patch["useCases"] = nonNil(*req.UseCases)
	}
	if req.Price != nil {
		patch["price"] = *req.Price
	}
	if req.Cost != nil {
		patch["cost"] = *req.Cost
	}
	if req.Warranty != nil {
		patch["warranty"] = *req.Warranty
	}
	if req.Column != nil {
		if *req.Column == 0 {
			patch["column"] = nil
			patch["position"] = nil
		} else {
			patch["column"] = *req.Column
		}
	}
	if req.Connector != nil {
		patch["connector"] = *req.Connector
	}
	if req.ImageUrl != nil {
		patch["imageUrl"] = *req.ImageUrl
	}
	if req.ThumbnailUrl != nil {
		patch["thumbnailUrl"] = *req.ThumbnailUrl
	}
	if req.VideoUrl != nil {
		patch["videoUrl"] = *req.VideoUrl
	}
	return patch
}

// ToDocument encodes a feature for the document store. Absent board
// metadata is left out rather than stored as null.
func (m *FeatureMapper) ToDocument(f entity.Feature) contract.Document {
	doc := contract.Document{
		"id":          f.Id,
		"name":        f.Name,
		"description": f.Description,
		"points":      nonNil(f.Points),
		"useCases":    nonNil(f.UseCases),
		"price":       f.Price,
		"cost":        f.Cost,
	}
	if f.Warranty != "" {
		doc["warranty"] = f.Warranty
	}
	if f.Column != nil {
		doc["column"] = *f.Column
	}
	if f.Position != nil {
		doc["position"] = *f.Position
	}
	if f.Connector != "" {
		doc["connector"] = string(f.Connector)
	}
	for key, url := range map[string]string{"imageUrl": f.ImageUrl, "thumbnailUrl": f.ThumbnailUrl, "videoUrl": f.VideoUrl} {
		if url != "" {
			doc[key] = url
		}
	}
	return doc
}

func (m *FeatureMapper) OptionToDocument(o entity.AlaCarteOption) contract.Document {
	doc := m.ToDocument(o.Feature)
	if o.IsNew != nil {
		doc["isNew"] = *o.IsNew
	}
	doc["isPublished"] = o.Published()
	if o.SourceFeatureId != "" {
		doc["sourceFeatureId"] = o.SourceFeatureId
	}
	return doc
}

func mapBoard[T, R any](g ordering.Grouped[T], fn func(T) R) dto.Board[R] {
	conv := func(items []T) []R {
		out := make([]R, 0, len(items))
		for _, item := range items {
			out = append(out, fn(item))
		}
		return out
	}
	return dto.Board[R]{
		Column1:    conv(g.Column1),
		Column2:    conv(g.Column2),
		Column3:    conv(g.Column3),
		Column4:    conv(g.Column4),
		Unassigned: conv(g.Unassigned),
	}
}

func nonNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
