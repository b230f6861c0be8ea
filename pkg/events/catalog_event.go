package events

import (
	"strings"
	"time"
)

const (
	FeatureCreated    = "FEATURE_CREATED"
	FeatureUpdated    = "FEATURE_UPDATED"
	FeatureDeleted    = "FEATURE_DELETED"
	FeaturesReordered = "FEATURES_REORDERED"
	OptionCreated     = "OPTION_CREATED"
	OptionsReordered  = "OPTIONS_REORDERED"
	OptionPublished   = "OPTION_PUBLISHED"
	PackageUpdated    = "PACKAGE_UPDATED"
	CatalogMigrated   = "CATALOG_MIGRATED"
)

// CatalogSubjectPrefix namespaces catalog events on the bus
const CatalogSubjectPrefix = "catalog."

// NewCatalogEvent describes a write to one collection
func NewCatalogEvent(eventType, collection string, ids ...string) BaseEvent {
	if ids == nil {
		ids = []string{}
	}
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"collection": collection,
			"ids":        ids,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// Subject maps an event type to its NATS subject, e.g. catalog.feature_updated
func Subject(e Event) string {
	return CatalogSubjectPrefix + strings.ToLower(e.EventType())
}
