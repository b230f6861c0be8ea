// FILE: internal/controller/quote_controller.go
package controller

import (
	"errors"

	"vpp-configurator/internal/dto"
	"vpp-configurator/internal/pkg/serverutils"
	"vpp-configurator/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQuoteController interface {
	RegisterRoutes(r fiber.Router)
	Quote(ctx *fiber.Ctx) error
	Agreement(ctx *fiber.Ctx) error
}

type quoteController struct {
	service service.QuoteService
}

func NewQuoteController(service service.QuoteService) IQuoteController {
	return &quoteController{service: service}
}

func (c *quoteController) RegisterRoutes(r fiber.Router) {
	quote := r.Group("/quote")
	quote.Post("/", c.Quote)
	quote.Post("/agreement", c.Agreement)
}

// Quote prices a package plus a la carte selection. Costs are never returned.
// @Summary Price a selection
// @Tags Quote
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Selection"
// @Success 200 {object} dto.QuoteResponse
// @Router /api/quote [post]
func (c *quoteController) Quote(ctx *fiber.Ctx) error {
	var req dto.QuoteRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	res, err := c.service.Quote(ctx.UserContext(), req)
	if err != nil {
		return c.selectionError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Quote calculated", res))
}

// @Summary Render the printable customer agreement
// @Tags Quote
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Selection and customer"
// @Success 200 {object} dto.AgreementResponse
// @Router /api/quote/agreement [post]
func (c *quoteController) Agreement(ctx *fiber.Ctx) error {
	var req dto.QuoteRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	res, err := c.service.Agreement(ctx.UserContext(), req)
	if err != nil {
		return c.selectionError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Agreement rendered", res))
}

// an unknown id in a selection is a bad request, not a missing resource
func (c *quoteController) selectionError(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrPackageNotFound) || errors.Is(err, service.ErrOptionNotFound) {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return respondError(ctx, err)
}
