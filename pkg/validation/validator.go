// Package validation turns raw store documents into typed catalog entities.
//
// Policy is filter, don't fail: an invalid record is logged and dropped, and
// never aborts processing of the remaining records. Malformed board metadata
// (column, position, connector) degrades to "absent" instead of rejecting the record.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"vpp-configurator/internal/entity"
	"vpp-configurator/internal/pkg/logger"

	"github.com/go-playground/validator/v10"
)

const logModule = "VALIDATION"

// RecordError describes a dropped record
type RecordError struct {
	Collection string `json:"collection"`
	Index      int    `json:"index"`
	Id         string `json:"id,omitempty"`
	Reason     string `json:"reason"`
}

func (e RecordError) Error() string {
	return fmt.Sprintf("%s[%d] (%s): %s", e.Collection, e.Index, e.Id, e.Reason)
}

// itemRecord holds the checked scalar fields shared by features and options
type itemRecord struct {
	Id           string  `json:"id" validate:"nonblank"`
	Name         string  `json:"name" validate:"nonblank"`
	Description  string  `json:"description" validate:"nonblank"`
	Price        float64 `json:"price" validate:"gte=0"`
	Cost         float64 `json:"cost" validate:"gte=0"`
	ImageUrl     string  `json:"imageUrl" validate:"omitempty,url"`
	ThumbnailUrl string  `json:"thumbnailUrl" validate:"omitempty,url"`
	VideoUrl     string  `json:"videoUrl" validate:"omitempty,url"`
}

type packageRecord struct {
	Id        string  `json:"id" validate:"nonblank"`
	Name      string  `json:"name" validate:"nonblank"`
	Price     float64 `json:"price" validate:"gte=0"`
	Cost      float64 `json:"cost" validate:"gte=0"`
	TierColor string  `json:"tier_color"`
}

type Validator struct {
	validate *validator.Validate
	logger   logger.ILogger
}

func New(log logger.ILogger) *Validator {
	return &Validator{validate: NewStructValidator(), logger: log}
}

// NewStructValidator returns a validator/v10 instance with the catalog tags
// registered and field names reported by their json key.
func NewStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Features validates raw feature documents
func (v *Validator) Features(docs []map[string]any) ([]entity.Feature, []RecordError) {
	out := make([]entity.Feature, 0, len(docs))
	var dropped []RecordError
	for i, doc := range docs {
		f, err := v.feature(doc)
		if err != nil {
			dropped = append(dropped, v.drop("features", i, doc, err))
			continue
		}
		out = append(out, f)
	}
	return out, dropped
}

// AlaCarteOptions validates raw option documents
func (v *Validator) AlaCarteOptions(docs []map[string]any) ([]entity.AlaCarteOption, []RecordError) {
	out := make([]entity.AlaCarteOption, 0, len(docs))
	var dropped []RecordError
	for i, doc := range docs {
		f, err := v.feature(doc)
		if err != nil {
			dropped = append(dropped, v.drop("alacarte_options", i, doc, err))
			continue
		}
		source, err := stringField(doc, "sourceFeatureId")
		if err != nil {
			dropped = append(dropped, v.drop("alacarte_options", i, doc, err))
			continue
		}
		out = append(out, entity.AlaCarteOption{
			Feature:         f,
			IsNew:           optionalBool(doc["isNew"]),
			IsPublished:     optionalBool(doc["isPublished"]),
			SourceFeatureId: source,
		})
	}
	return out, dropped
}

// Packages validates raw package documents. Any stored feature list is ignored:
// tier composition is always derived.
func (v *Validator) Packages(docs []map[string]any) ([]entity.PackageTier, []RecordError) {
	out := make([]entity.PackageTier, 0, len(docs))
	var dropped []RecordError
	for i, doc := range docs {
		p, err := v.packageTier(doc)
		if err != nil {
			dropped = append(dropped, v.drop("packages", i, doc, err))
			continue
		}
		out = append(out, p)
	}
	return out, dropped
}

func (v *Validator) feature(doc map[string]any) (entity.Feature, error) {
	var rec itemRecord
	var err error
	for _, field := range []struct {
		key string
		dst *string
	}{
		{"id", &rec.Id},
		{"name", &rec.Name},
		{"description", &rec.Description},
		{"imageUrl", &rec.ImageUrl},
		{"thumbnailUrl", &rec.ThumbnailUrl},
		{"videoUrl", &rec.VideoUrl},
	} {
		if *field.dst, err = stringField(doc, field.key); err != nil {
			return entity.Feature{}, err
		}
	}

	price, hasPrice, err := numberField(doc, "price")
	if err != nil {
		return entity.Feature{}, err
	}
	if !hasPrice {
		return entity.Feature{}, errors.New("price is required")
	}
	rec.Price = price
	if rec.Cost, _, err = numberField(doc, "cost"); err != nil {
		return entity.Feature{}, err
	}

	if err := v.check(rec); err != nil {
		return entity.Feature{}, err
	}

	points, err := stringList(doc, "points")
	if err != nil {
		return entity.Feature{}, err
	}
	useCases, err := stringList(doc, "useCases")
	if err != nil {
		return entity.Feature{}, err
	}
	warranty, err := stringField(doc, "warranty")
	if err != nil {
		return entity.Feature{}, err
	}

	f := entity.Feature{
		Id:           rec.Id,
		Name:         rec.Name,
		Description:  rec.Description,
		Points:       points,
		UseCases:     useCases,
		Price:        rec.Price,
		Cost:         rec.Cost,
		Warranty:     warranty,
		Column:       optionalColumn(doc["column"]),
		Position:     optionalPosition(doc["position"]),
		ImageUrl:     rec.ImageUrl,
		ThumbnailUrl: rec.ThumbnailUrl,
		VideoUrl:     rec.VideoUrl,
	}
	if s, ok := doc["connector"].(string); ok {
		f.Connector, _ = entity.ParseConnector(s)
	}
	return f, nil
}

func (v *Validator) packageTier(doc map[string]any) (entity.PackageTier, error) {
	var rec packageRecord
	var err error
	if rec.Id, err = stringField(doc, "id"); err != nil {
		return entity.PackageTier{}, err
	}
	if rec.Name, err = stringField(doc, "name"); err != nil {
		return entity.PackageTier{}, err
	}
	if rec.TierColor, err = stringField(doc, "tier_color"); err != nil {
		return entity.PackageTier{}, err
	}
	price, hasPrice, err := numberField(doc, "price")
	if err != nil {
		return entity.PackageTier{}, err
	}
	if !hasPrice {
		return entity.PackageTier{}, errors.New("price is required")
	}
	rec.Price = price
	if rec.Cost, _, err = numberField(doc, "cost"); err != nil {
		return entity.PackageTier{}, err
	}

	if err := v.check(rec); err != nil {
		return entity.PackageTier{}, err
	}

	recommended := optionalBool(doc["is_recommended"])
	return entity.PackageTier{
		Id:            rec.Id,
		Name:          rec.Name,
		Price:         rec.Price,
		Cost:          rec.Cost,
		Features:      []entity.Feature{},
		IsRecommended: recommended != nil && *recommended,
		TierColor:     rec.TierColor,
	}, nil
}

func (v *Validator) check(rec any) error {
	err := v.validate.Struct(rec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, Describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// Describe renders a field error as a short human-readable reason
func Describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be <= %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "nonblank":
		return fmt.Sprintf("%s must not be empty", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}

func (v *Validator) drop(collection string, index int, doc map[string]any, err error) RecordError {
	id, _ := doc["id"].(string)
	rerr := RecordError{Collection: collection, Index: index, Id: id, Reason: err.Error()}
	v.logger.Warn(logModule, "Dropped invalid record", map[string]interface{}{
		"collection": collection,
		"index":      index,
		"id":         id,
		"reason":     rerr.Reason,
	})
	return rerr
}
