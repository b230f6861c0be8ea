package pricing

import (
	"fmt"
	"strings"

	"vpp-configurator/internal/entity"
)

const agreementTitle = "VEHICLE PROTECTION AGREEMENT"

// RenderAgreement produces the printable customer agreement. Internal costs are never printed.
func RenderAgreement(info entity.CustomerInfo, s Summary, date string) string {
	var b strings.Builder

	b.WriteString(agreementTitle + "\n")
	b.WriteString(strings.Repeat("=", len(agreementTitle)) + "\n")
	fmt.Fprintf(&b, "Date:     %s\n", orDash(date))
	fmt.Fprintf(&b, "Customer: %s\n", orDash(strings.TrimSpace(info.Name)))
	fmt.Fprintf(&b, "Vehicle:  %s\n", orDash(info.Vehicle()))
	b.WriteString("\n")

	b.WriteString("Selected package:\n")
	if s.Package == nil {
		b.WriteString("  (none)\n")
	} else {
		fmt.Fprintf(&b, "  - %s: %s\n", s.Package.Name, FormatCurrency(s.Package.Price))
	}

	b.WriteString("A la carte options:\n")
	if len(s.Options) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, o := range s.Options {
		fmt.Fprintf(&b, "  - %s: %s\n", o.Name, FormatCurrency(o.Price))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Total: %s\n", FormatCurrency(s.TotalPrice))
	b.WriteString("\n")
	b.WriteString("Customer signature: ____________________\n")
	b.WriteString("Dealer signature:   ____________________\n")

	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
