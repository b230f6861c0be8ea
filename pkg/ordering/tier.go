package ordering

import (
	"slices"
	"strings"
)

// tierColumns is the only domain coupling between tier names and board columns.
// A tier may aggregate several columns; today each maps to exactly one.
var tierColumns = map[string][]int{
	"gold":     {1},
	"elite":    {2},
	"platinum": {3},
}

func tierKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// GetTierColumns returns the columns that make up a tier. Unknown tiers yield none.
func GetTierColumns(tierName string) []int {
	return slices.Clone(tierColumns[tierKey(tierName)])
}

// GetTierColumn returns the single column of a tier
func GetTierColumn(tierName string) (int, bool) {
	cols := tierColumns[tierKey(tierName)]
	if len(cols) == 0 {
		return 0, false
	}
	return cols[0], true
}

// IsKnownTier reports whether the tier name resolves to any column
func IsKnownTier(tierName string) bool {
	return len(tierColumns[tierKey(tierName)]) > 0
}

// DeriveTierFeatures computes a tier's feature list from column membership:
// filter by the tier's columns, sort, then drop case-insensitive duplicate
// names keeping the first in sorted order.
func DeriveTierFeatures[T Orderable[T]](tierName string, all []T) []T {
	cols := GetTierColumns(tierName)
	if len(cols) == 0 {
		return []T{}
	}

	members := make([]T, 0, len(all))
	for _, item := range all {
		if c, ok := ColumnOf(item); ok && slices.Contains(cols, c) {
			members = append(members, item)
		}
	}

	return dedupeByName(SortFeatures(members))
}

// GetPopularAddons returns column 4 in board order
func GetPopularAddons[T Orderable[T]](items []T) []T {
	addons := make([]T, 0)
	for _, item := range items {
		if c, ok := ColumnOf(item); ok && c == AddonsColumn {
			addons = append(addons, item)
		}
	}
	return SortFeatures(addons)
}

func dedupeByName[T Orderable[T]](sorted []T) []T {
	seen := make(map[string]struct{}, len(sorted))
	out := make([]T, 0, len(sorted))
	for _, item := range sorted {
		key := strings.ToLower(strings.TrimSpace(item.GetName()))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
