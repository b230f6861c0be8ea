package serverutils

import (
	"errors"
	"strings"

	"vpp-configurator/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var requestValidator = validation.NewStructValidator()

// ParseAndValidate decodes the JSON body into req and checks its validate tags.
// The returned error is a *fiber.Error carrying a 400.
func ParseAndValidate(ctx *fiber.Ctx, req any) error {
	if err := ctx.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return Validate(req)
}

func Validate(req any) error {
	err := requestValidator.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, validation.Describe(fe))
	}
	return fiber.NewError(fiber.StatusBadRequest, strings.Join(msgs, "; "))
}
