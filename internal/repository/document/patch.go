// Package document holds the store-agnostic operations on raw catalog
// documents shared by every CatalogRepository implementation.
package document

import (
	"fmt"
	"maps"
	"strings"

	"vpp-configurator/internal/repository/contract"
	"vpp-configurator/pkg/ordering"
)

// ID returns the trimmed document key
func ID(doc contract.Document) (string, error) {
	id, _ := doc["id"].(string)
	id = strings.TrimSpace(id)
	if id == "" {
		return "", contract.ErrMissingDocId
	}
	return id, nil
}

// Clone copies a document deeply enough that nested maps and slices are not shared
func Clone(doc contract.Document) contract.Document {
	if doc == nil {
		return nil
	}
	out := make(contract.Document, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return Clone(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	case []string:
		return append([]string(nil), t...)
	}
	return v
}

// MergePatch applies an RFC 7396 merge patch and returns a new document
func MergePatch(doc, patch contract.Document) contract.Document {
	out := Clone(doc)
	if out == nil {
		out = contract.Document{}
	}
	for k, v := range patch {
		if v == nil {
			delete(out, k)
			continue
		}
		if sub, ok := v.(map[string]any); ok {
			existing, _ := out[k].(map[string]any)
			out[k] = MergePatch(existing, sub)
			continue
		}
		out[k] = cloneValue(v)
	}
	return out
}

// PositionPatch converts an update descriptor into the merge patch the
// store persists verbatim. A column of 0 clears the assignment.
func PositionPatch(u ordering.PositionUpdate) contract.Document {
	patch := contract.Document{"position": u.Position}
	if u.Column != nil {
		if *u.Column == 0 {
			patch["column"] = nil
		} else {
			patch["column"] = *u.Column
		}
	}
	if u.Connector != nil {
		patch["connector"] = string(*u.Connector)
	}
	return patch
}

// WithID stamps the key onto a copy of doc
func WithID(doc contract.Document, id string) contract.Document {
	out := maps.Clone(doc)
	if out == nil {
		out = contract.Document{}
	}
	out["id"] = id
	return out
}

func NotFound(collection, id string) error {
	return fmt.Errorf("%s/%s: %w", collection, id, contract.ErrDocumentNotFound)
}
