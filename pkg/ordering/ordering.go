// Package ordering sorts, groups and normalizes board items (features and
// à la carte options) by their admin-assigned column and position, and derives
// package tier composition from column membership.
//
// Every function returns new slices and never mutates its input. Malformed
// metadata (nil, negative position, column outside 1-4) is treated as absent.
package ordering

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"vpp-configurator/internal/entity"
)

const (
	MinColumn = 1
	MaxColumn = 4

	// AddonsColumn is reserved for standalone add-ons shown on the main page
	AddonsColumn = 4
)

// Orderable is implemented by entity.Feature and entity.AlaCarteOption
type Orderable[T any] interface {
	GetId() string
	GetName() string
	GetColumn() *int
	GetPosition() *int
	GetConnector() entity.Connector
	WithPosition(position int) T
	WithColumn(column *int) T
	WithConnector(connector entity.Connector) T
}

// ColumnOf returns the item's column when it lies in 1-4
func ColumnOf[T Orderable[T]](item T) (int, bool) {
	c := item.GetColumn()
	if c == nil || *c < MinColumn || *c > MaxColumn {
		return 0, false
	}
	return *c, true
}

func columnRank[T Orderable[T]](item T) int {
	if c, ok := ColumnOf(item); ok {
		return c
	}
	return math.MaxInt
}

func positionRank[T Orderable[T]](item T) int {
	p := item.GetPosition()
	if p == nil || *p < 0 {
		return math.MaxInt
	}
	return *p
}

// CompareFeatures orders by column, then position, then id. Missing column or
// position sorts after every present value.
func CompareFeatures[T Orderable[T]](a, b T) int {
	if c := cmp.Compare(columnRank(a), columnRank(b)); c != 0 {
		return c
	}
	if c := cmp.Compare(positionRank(a), positionRank(b)); c != 0 {
		return c
	}
	return strings.Compare(a.GetId(), b.GetId())
}

// SortFeatures returns a sorted copy
func SortFeatures[T Orderable[T]](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	slices.SortStableFunc(out, CompareFeatures[T])
	return out
}

// NormalizePositions reassigns positions 0..n-1 following the given order
func NormalizePositions[T Orderable[T]](items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = item.WithPosition(i)
	}
	return out
}

// Grouped is the admin board: one bucket per column plus unassigned
type Grouped[T any] struct {
	Column1    []T `json:"1"`
	Column2    []T `json:"2"`
	Column3    []T `json:"3"`
	Column4    []T `json:"4"`
	Unassigned []T `json:"unassigned"`
}

// Bucket returns the items of column 1-4, or the unassigned bucket for any other value
func (g Grouped[T]) Bucket(column int) []T {
	switch column {
	case 1:
		return g.Column1
	case 2:
		return g.Column2
	case 3:
		return g.Column3
	case 4:
		return g.Column4
	}
	return g.Unassigned
}

func (g *Grouped[T]) setBucket(column int, items []T) {
	switch column {
	case 1:
		g.Column1 = items
	case 2:
		g.Column2 = items
	case 3:
		g.Column3 = items
	case 4:
		g.Column4 = items
	default:
		g.Unassigned = items
	}
}

// BucketKeys lists the board columns in display order; 0 is the unassigned bucket
var BucketKeys = []int{1, 2, 3, 4, 0}

// Len is the total number of items across all buckets
func (g Grouped[T]) Len() int {
	n := 0
	for _, k := range BucketKeys {
		n += len(g.Bucket(k))
	}
	return n
}

// Flatten returns every item in board order
func (g Grouped[T]) Flatten() []T {
	out := make([]T, 0, g.Len())
	for _, k := range BucketKeys {
		out = append(out, g.Bucket(k)...)
	}
	return out
}

// GroupFeaturesByColumn partitions items into the five board buckets, each sorted
func GroupFeaturesByColumn[T Orderable[T]](items []T) Grouped[T] {
	buckets := map[int][]T{}
	for _, item := range items {
		c, _ := ColumnOf(item)
		buckets[c] = append(buckets[c], item)
	}

	var g Grouped[T]
	for _, k := range BucketKeys {
		g.setBucket(k, SortFeatures(buckets[k]))
	}
	return g
}

// NormalizeGroupedPositions normalizes each bucket independently
func NormalizeGroupedPositions[T Orderable[T]](g Grouped[T]) Grouped[T] {
	var out Grouped[T]
	for _, k := range BucketKeys {
		out.setBucket(k, NormalizePositions(g.Bucket(k)))
	}
	return out
}
