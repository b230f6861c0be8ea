package controller

import (
	"errors"

	"vpp-configurator/internal/pkg/serverutils"
	"vpp-configurator/internal/service"
	"vpp-configurator/pkg/batch"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	var fe *fiber.Error
	var berr *batch.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, service.ErrFeatureNotFound),
		errors.Is(err, service.ErrOptionNotFound),
		errors.Is(err, service.ErrPackageNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidRecord),
		errors.Is(err, service.ErrUnknownIds),
		errors.Is(err, service.ErrEmptyPatch):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrAlreadyPromoted):
		return fiber.StatusConflict
	case errors.As(err, &berr) && berr.PartialCommit():
		// some chunks landed, the store is ahead of the request
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

func respondError(ctx *fiber.Ctx, err error) error {
	code := statusFor(err)
	return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
}
