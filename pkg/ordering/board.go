package ordering

import (
	"slices"

	"vpp-configurator/internal/entity"
)

// PositionUpdate is the descriptor the data layer persists verbatim after a reorder.
// Column 0 clears the column assignment; nil leaves it untouched.
type PositionUpdate struct {
	Id        string            `json:"id"`
	Position  int               `json:"position"`
	Column    *int              `json:"column,omitempty"`
	Connector *entity.Connector `json:"connector,omitempty"`
}

// BuildPositionUpdates flattens a board into update descriptors. Each item
// gets the column of the bucket it sits in and its current position.
func BuildPositionUpdates[T Orderable[T]](g Grouped[T]) []PositionUpdate {
	updates := make([]PositionUpdate, 0, g.Len())
	for _, k := range BucketKeys {
		for i, item := range g.Bucket(k) {
			pos := i
			if p := item.GetPosition(); p != nil && *p >= 0 {
				pos = *p
			}
			u := PositionUpdate{
				Id:       item.GetId(),
				Position: pos,
				Column:   entity.IntPtr(k),
			}
			if c := item.GetConnector(); c != "" {
				u.Connector = &c
			}
			updates = append(updates, u)
		}
	}
	return updates
}

// Locate finds an item on the board, returning its bucket key and index
func Locate[T Orderable[T]](g Grouped[T], id string) (bucket int, index int, ok bool) {
	for _, k := range BucketKeys {
		for i, item := range g.Bucket(k) {
			if item.GetId() == id {
				return k, i, true
			}
		}
	}
	return 0, 0, false
}

// MoveFeature commits a drag-and-drop: the item leaves its bucket and is
// inserted into toColumn (0 for unassigned) at toIndex, clamped to the bucket
// bounds. The returned board is normalized. Unknown ids report false and
// return the board unchanged.
func MoveFeature[T Orderable[T]](g Grouped[T], id string, toColumn, toIndex int) (Grouped[T], bool) {
	from, idx, ok := Locate(g, id)
	if !ok {
		return g, false
	}
	if toColumn < MinColumn || toColumn > MaxColumn {
		toColumn = 0
	}

	var out Grouped[T]
	for _, k := range BucketKeys {
		out.setBucket(k, slices.Clone(g.Bucket(k)))
	}

	item := out.Bucket(from)[idx]
	out.setBucket(from, slices.Delete(out.Bucket(from), idx, idx+1))

	if toColumn == 0 {
		item = item.WithColumn(nil)
	} else {
		item = item.WithColumn(entity.IntPtr(toColumn))
	}

	target := out.Bucket(toColumn)
	toIndex = max(0, min(toIndex, len(target)))
	out.setBucket(toColumn, slices.Insert(target, toIndex, item))

	return NormalizeGroupedPositions(out), true
}

// ReorderBucket places the listed ids first, in the given order, followed by
// the remaining bucket items in their existing order. Ids not found in the
// bucket are ignored.
func ReorderBucket[T Orderable[T]](items []T, ids []string) []T {
	byId := make(map[string]T, len(items))
	for _, item := range items {
		byId[item.GetId()] = item
	}

	out := make([]T, 0, len(items))
	placed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		item, ok := byId[id]
		if !ok {
			continue
		}
		if _, dup := placed[id]; dup {
			continue
		}
		placed[id] = struct{}{}
		out = append(out, item)
	}
	for _, item := range items {
		if _, done := placed[item.GetId()]; !done {
			out = append(out, item)
		}
	}
	return out
}

// ArrangeBoard rebuilds a board from per-bucket id lists. A listed id moves
// into the bucket it is listed under. Unlisted items keep their bucket and
// follow the listed ones in their existing order. The result is normalized;
// ids that are not on the board are returned as unknown.
func ArrangeBoard[T Orderable[T]](g Grouped[T], layout Grouped[string]) (Grouped[T], []string) {
	byId := make(map[string]T, g.Len())
	for _, item := range g.Flatten() {
		byId[item.GetId()] = item
	}

	var out Grouped[T]
	var unknown []string
	claimed := make(map[string]struct{}, len(byId))
	for _, k := range BucketKeys {
		var bucket []T
		for _, id := range layout.Bucket(k) {
			item, ok := byId[id]
			if !ok {
				unknown = append(unknown, id)
				continue
			}
			if _, dup := claimed[id]; dup {
				continue
			}
			claimed[id] = struct{}{}
			if k == 0 {
				item = item.WithColumn(nil)
			} else {
				item = item.WithColumn(entity.IntPtr(k))
			}
			bucket = append(bucket, item)
		}
		out.setBucket(k, bucket)
	}
	for _, k := range BucketKeys {
		bucket := out.Bucket(k)
		for _, item := range g.Bucket(k) {
			if _, done := claimed[item.GetId()]; !done {
				bucket = append(bucket, item)
			}
		}
		out.setBucket(k, bucket)
	}
	return NormalizeGroupedPositions(out), unknown
}
