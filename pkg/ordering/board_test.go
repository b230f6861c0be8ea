package ordering

import (
	"testing"

	"vpp-configurator/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBoard() Grouped[entity.Feature] {
	return NormalizeGroupedPositions(GroupFeaturesByColumn([]entity.Feature{
		feat("a", ptr(1), ptr(0)),
		feat("b", ptr(1), ptr(4)),
		feat("c", ptr(1), ptr(8)),
		feat("d", ptr(2), ptr(0)),
		feat("e", nil, nil),
	}))
}

func TestMoveFeature_AcrossColumns(t *testing.T) {
	board := sampleBoard()

	moved, ok := MoveFeature(board, "b", 2, 0)

	require.True(t, ok)
	assert.Equal(t, []string{"a", "c"}, ids(moved.Column1))
	assert.Equal(t, []int{0, 1}, positions(moved.Column1))
	assert.Equal(t, []string{"b", "d"}, ids(moved.Column2))
	assert.Equal(t, []int{0, 1}, positions(moved.Column2))
	assert.Equal(t, 2, *moved.Column2[0].Column)
	assert.Equal(t, []string{"a", "b", "c"}, ids(board.Column1), "source board must be untouched")
}

func TestMoveFeature_WithinColumn(t *testing.T) {
	moved, ok := MoveFeature(sampleBoard(), "a", 1, 10)

	require.True(t, ok)
	assert.Equal(t, []string{"b", "c", "a"}, ids(moved.Column1))
	assert.Equal(t, []int{0, 1, 2}, positions(moved.Column1))
}

func TestMoveFeature_ToUnassigned(t *testing.T) {
	moved, ok := MoveFeature(sampleBoard(), "d", 0, -3)

	require.True(t, ok)
	assert.Empty(t, moved.Column2)
	assert.Equal(t, []string{"d", "e"}, ids(moved.Unassigned))
	assert.Nil(t, moved.Unassigned[0].Column)
}

func TestMoveFeature_UnknownId(t *testing.T) {
	board := sampleBoard()

	moved, ok := MoveFeature(board, "missing", 1, 0)

	assert.False(t, ok)
	assert.Equal(t, board, moved)
}

func TestBuildPositionUpdates(t *testing.T) {
	or := entity.ConnectorOr
	board := sampleBoard()
	board.Column2[0] = board.Column2[0].WithConnector(or)

	updates := BuildPositionUpdates(board)

	require.Len(t, updates, 5)
	assert.Equal(t, PositionUpdate{Id: "a", Position: 0, Column: ptr(1)}, updates[0])
	assert.Equal(t, PositionUpdate{Id: "c", Position: 2, Column: ptr(1)}, updates[2])
	assert.Equal(t, PositionUpdate{Id: "d", Position: 0, Column: ptr(2), Connector: &or}, updates[3])
	assert.Equal(t, PositionUpdate{Id: "e", Position: 0, Column: ptr(0)}, updates[4])
}

func TestReorderBucket(t *testing.T) {
	items := []entity.Feature{feat("a", ptr(1), ptr(0)), feat("b", ptr(1), ptr(1)), feat("c", ptr(1), ptr(2))}

	got := ReorderBucket(items, []string{"c", "zzz", "a", "c"})

	assert.Equal(t, []string{"c", "a", "b"}, ids(got))
}

func TestArrangeBoard(t *testing.T) {
	arranged, unknown := ArrangeBoard(sampleBoard(), Grouped[string]{
		Column1:    []string{"c", "a"},
		Column2:    []string{"e"},
		Unassigned: []string{"ghost"},
	})

	assert.Equal(t, []string{"ghost"}, unknown)
	assert.Equal(t, []string{"c", "a", "b"}, ids(arranged.Column1), "unlisted items follow the listed ones")
	assert.Equal(t, []int{0, 1, 2}, positions(arranged.Column1))
	assert.Equal(t, []string{"e", "d"}, ids(arranged.Column2))
	assert.Equal(t, 2, *arranged.Column2[0].Column)
	assert.Empty(t, arranged.Unassigned)
	assert.Equal(t, 5, arranged.Len())
}

func TestArrangeBoard_DuplicateListingKeepsFirst(t *testing.T) {
	arranged, unknown := ArrangeBoard(sampleBoard(), Grouped[string]{
		Column1: []string{"d"},
		Column2: []string{"d"},
	})

	assert.Empty(t, unknown)
	assert.Equal(t, []string{"d", "a", "b", "c"}, ids(arranged.Column1))
	assert.Empty(t, arranged.Column2)
}
