package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	e := NewCatalogEvent(FeaturesReordered, "features", "a", "b")

	raw, err := Encode(e)
	require.NoError(t, err)
	got, err := Decode(raw)
	require.NoError(t, err)

	assert.Equal(t, FeaturesReordered, got.EventType())
	assert.Equal(t, "features", got.Payload()["collection"])
	assert.Equal(t, []interface{}{"a", "b"}, got.Payload()["ids"])
	assert.True(t, e.OccurredAt.Equal(got.OccurredAt))
}

func TestDecode_RejectsUntyped(t *testing.T) {
	_, err := Decode([]byte(`{"data":{}}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "catalog.option_published", Subject(NewCatalogEvent(OptionPublished, "alacarte_options")))
}
