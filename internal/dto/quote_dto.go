package dto

type CustomerInfoRequest struct {
	Name  string `json:"name"`
	Year  string `json:"year"`
	Make  string `json:"make"`
	Model string `json:"model"`
}

type PriceOverrideRequest struct {
	Price *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Cost  *float64 `json:"cost,omitempty" validate:"omitempty,gte=0"`
}

type QuoteRequest struct {
	PackageId string                          `json:"packageId,omitempty"`
	OptionIds []string                        `json:"optionIds" validate:"dive,required"`
	Overrides map[string]PriceOverrideRequest `json:"overrides,omitempty" validate:"omitempty,dive"`
	Customer  CustomerInfoRequest             `json:"customer"`
	Date      string                          `json:"date,omitempty"`
}

type QuoteLineResponse struct {
	Id             string  `json:"id"`
	Name           string  `json:"name"`
	Kind           string  `json:"kind"`
	Price          float64 `json:"price"`
	FormattedPrice string  `json:"formatted_price"`
}

type QuoteResponse struct {
	Package        *QuoteLineResponse  `json:"package,omitempty"`
	Options        []QuoteLineResponse `json:"options"`
	TotalPrice     float64             `json:"total_price"`
	FormattedTotal string              `json:"formatted_total"`
	Warnings       []string            `json:"warnings,omitempty"`
}

type AgreementResponse struct {
	Text string `json:"text"`
}
