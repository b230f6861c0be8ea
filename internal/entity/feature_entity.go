// FILE: internal/entity/feature_entity.go
// Domain entity for protection features
package entity

import "strings"

// Connector is the display hint shown between consecutive features in a list
type Connector string

const (
	ConnectorAnd Connector = "AND"
	ConnectorOr  Connector = "OR"
)

// ParseConnector resolves a connector case-insensitively. Unknown values report false.
func ParseConnector(value string) (Connector, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(ConnectorAnd):
		return ConnectorAnd, true
	case string(ConnectorOr):
		return ConnectorOr, true
	}
	return "", false
}

// Feature is a purchasable benefit that may be bundled into package tiers.
// Column and Position are admin-assigned board metadata; a nil Column means unassigned.
type Feature struct {
	Id           string
	Name         string
	Description  string
	Points       []string
	UseCases     []string
	Price        float64
	Cost         float64 // internal only
	Warranty     string
	Column       *int
	Position     *int
	Connector    Connector // empty means AND
	ImageUrl     string
	ThumbnailUrl string
	VideoUrl     string
}

// EffectiveConnector returns the connector, defaulting to AND
func (f Feature) EffectiveConnector() Connector {
	if f.Connector == "" {
		return ConnectorAnd
	}
	return f.Connector
}

func (f Feature) GetId() string           { return f.Id }
func (f Feature) GetName() string         { return f.Name }
func (f Feature) GetColumn() *int         { return f.Column }
func (f Feature) GetPosition() *int       { return f.Position }
func (f Feature) GetConnector() Connector { return f.Connector }

// WithPosition returns a copy with the position replaced
func (f Feature) WithPosition(position int) Feature {
	f.Position = IntPtr(position)
	return f
}

// WithColumn returns a copy with the column replaced. Nil unassigns the feature.
func (f Feature) WithColumn(column *int) Feature {
	f.Column = copyIntPtr(column)
	return f
}

// WithConnector returns a copy with the connector replaced
func (f Feature) WithConnector(connector Connector) Feature {
	f.Connector = connector
	return f
}

// IntPtr is a small helper for optional integer metadata
func IntPtr(v int) *int {
	return &v
}

func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	return IntPtr(*p)
}
