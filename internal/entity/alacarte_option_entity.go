// FILE: internal/entity/alacarte_option_entity.go
package entity

// AlaCarteOption is a standalone purchasable item surfaced in its own catalog.
// It carries the same board metadata as Feature.
type AlaCarteOption struct {
	Feature
	IsNew           *bool
	IsPublished     *bool  // nil means unpublished
	SourceFeatureId string // set when promoted from a Feature
}

// Published reports whether the option may be shown to customers
func (o AlaCarteOption) Published() bool {
	return o.IsPublished != nil && *o.IsPublished
}

func (o AlaCarteOption) WithPosition(position int) AlaCarteOption {
	o.Feature = o.Feature.WithPosition(position)
	return o
}

func (o AlaCarteOption) WithColumn(column *int) AlaCarteOption {
	o.Feature = o.Feature.WithColumn(column)
	return o
}

func (o AlaCarteOption) WithConnector(connector Connector) AlaCarteOption {
	o.Feature = o.Feature.WithConnector(connector)
	return o
}

// OptionFromFeature builds an unpublished, unassigned option that keeps a provenance link to its feature
func OptionFromFeature(id string, f Feature) AlaCarteOption {
	isNew := true
	published := false
	sourceId := f.Id
	f.Id = id
	f.Column = nil
	f.Position = nil
	return AlaCarteOption{
		Feature:         f,
		IsNew:           &isNew,
		IsPublished:     &published,
		SourceFeatureId: sourceId,
	}
}
