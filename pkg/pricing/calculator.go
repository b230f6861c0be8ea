// Package pricing aggregates a customer's selection into totals. Overrides are
// applied as a pure overlay and never touch stored records.
package pricing

import (
	"strings"

	"vpp-configurator/internal/entity"

	"github.com/dustin/go-humanize"
)

const (
	KindPackage = "package"
	KindOption  = "option"
)

// Line is one priced row of a summary
type Line struct {
	Id    string  `json:"id"`
	Name  string  `json:"name"`
	Kind  string  `json:"kind"`
	Price float64 `json:"price"`
	Cost  float64 `json:"cost"`
}

// Summary holds totals accumulated left to right in display order
type Summary struct {
	Package    *Line   `json:"package,omitempty"`
	Options    []Line  `json:"options"`
	TotalPrice float64 `json:"total_price"`
	TotalCost  float64 `json:"total_cost"`
}

// EffectivePrice returns the override price when present, else the stored price
func EffectivePrice(id string, stored float64, overrides entity.PriceOverrides) float64 {
	if o, ok := overrides[id]; ok && o.Price != nil {
		return *o.Price
	}
	return stored
}

// EffectiveCost returns the override cost when present, else the stored cost
func EffectiveCost(id string, stored float64, overrides entity.PriceOverrides) float64 {
	if o, ok := overrides[id]; ok && o.Cost != nil {
		return *o.Cost
	}
	return stored
}

// Calculate sums the optional package and the selected options
func Calculate(pkg *entity.PackageTier, options []entity.AlaCarteOption, overrides entity.PriceOverrides) Summary {
	s := Summary{Options: make([]Line, 0, len(options))}

	if pkg != nil {
		line := Line{
			Id:    pkg.Id,
			Name:  pkg.Name,
			Kind:  KindPackage,
			Price: EffectivePrice(pkg.Id, pkg.Price, overrides),
			Cost:  EffectiveCost(pkg.Id, pkg.Cost, overrides),
		}
		s.Package = &line
		s.TotalPrice += line.Price
		s.TotalCost += line.Cost
	}

	for _, o := range options {
		line := Line{
			Id:    o.Id,
			Name:  o.Name,
			Kind:  KindOption,
			Price: EffectivePrice(o.Id, o.Price, overrides),
			Cost:  EffectiveCost(o.Id, o.Cost, overrides),
		}
		s.Options = append(s.Options, line)
		s.TotalPrice += line.Price
		s.TotalCost += line.Cost
	}

	return s
}

// FormatCurrency renders a dollar amount with two decimals, e.g. "$3,538.00"
func FormatCurrency(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// Margin is price minus cost. Negative margins are advisory only.
func Margin(price, cost float64) float64 {
	return price - cost
}

// MarginWarnings lists lines sold below cost
func MarginWarnings(s Summary) []string {
	var lines []Line
	if s.Package != nil {
		lines = append(lines, *s.Package)
	}
	lines = append(lines, s.Options...)

	var warnings []string
	for _, l := range lines {
		if Margin(l.Price, l.Cost) < 0 {
			warnings = append(warnings, strings.TrimSpace(l.Name)+" is priced below cost ("+
				FormatCurrency(l.Price)+" < "+FormatCurrency(l.Cost)+")")
		}
	}
	return warnings
}
