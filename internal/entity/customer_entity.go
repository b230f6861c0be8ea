// FILE: internal/entity/customer_entity.go
package entity

import "strings"

// CustomerInfo is display and print input only
type CustomerInfo struct {
	Name  string
	Year  string
	Make  string
	Model string
}

// Vehicle joins the non-empty vehicle parts, e.g. "2024 Toyota Camry"
func (c CustomerInfo) Vehicle() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Year, c.Make, c.Model} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// PriceOverride adjusts displayed numbers without touching stored records
type PriceOverride struct {
	Price *float64
	Cost  *float64
}

// PriceOverrides maps entity id to its override. A missing entry means "use stored value".
type PriceOverrides map[string]PriceOverride
