package specification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	doc := map[string]any{"id": "f1", "column": float64(4), "isPublished": true, "name": "Dent Repair"}

	assert.True(t, ByDocIDs{IDs: []string{"f0", "f1"}}.Match(doc))
	assert.False(t, ByDocIDs{IDs: []string{"f2"}}.Match(doc))
	assert.True(t, DataHasKey{Key: "column"}.Match(doc))
	assert.False(t, DataHasKey{Key: "featureIds"}.Match(doc))
	assert.True(t, DataFieldEquals{Key: "column", Value: 4}.Match(doc))
	assert.True(t, DataFieldEquals{Key: "isPublished", Value: true}.Match(doc))
	assert.False(t, DataFieldEquals{Key: "isPublished", Value: "true"}.Match(doc))
	assert.False(t, DataFieldEquals{Key: "missing", Value: 1}.Match(doc))
}

func TestMatchAll(t *testing.T) {
	doc := map[string]any{"id": "f1", "column": float64(1)}

	assert.True(t, MatchAll(doc))
	assert.True(t, MatchAll(doc, DataHasKey{Key: "column"}, ByDocIDs{IDs: []string{"f1"}}))
	assert.False(t, MatchAll(doc, DataHasKey{Key: "column"}, DataFieldEquals{Key: "column", Value: 2}))
}
