// FILE: internal/controller/storefront_controller.go
// Controller for the customer-facing catalog endpoints
package controller

import (
	"vpp-configurator/internal/pkg/serverutils"
	"vpp-configurator/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStorefrontController interface {
	RegisterRoutes(r fiber.Router)
	GetPackages(ctx *fiber.Ctx) error
	GetPopularAddons(ctx *fiber.Ctx) error
	GetAlaCarteCatalog(ctx *fiber.Ctx) error
}

type storefrontController struct {
	service service.StorefrontService
}

func NewStorefrontController(service service.StorefrontService) IStorefrontController {
	return &storefrontController{service: service}
}

func (c *storefrontController) RegisterRoutes(r fiber.Router) {
	r.Get("/packages", c.GetPackages)
	r.Get("/addons/popular", c.GetPopularAddons)
	r.Get("/alacarte", c.GetAlaCarteCatalog)
}

// GetPackages returns every tier with its derived feature list
// @Summary List protection packages
// @Tags Storefront
// @Produce json
// @Success 200 {object} []dto.PackageResponse
// @Router /api/packages [get]
func (c *storefrontController) GetPackages(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Packages retrieved", c.service.GetPackages(ctx.UserContext())))
}

// @Summary List popular add-ons
// @Tags Storefront
// @Produce json
// @Success 200 {object} []dto.FeatureResponse
// @Router /api/addons/popular [get]
func (c *storefrontController) GetPopularAddons(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Popular add-ons retrieved", c.service.GetPopularAddons(ctx.UserContext())))
}

// @Summary List published a la carte options
// @Tags Storefront
// @Produce json
// @Success 200 {object} []dto.AlaCarteOptionResponse
// @Router /api/alacarte [get]
func (c *storefrontController) GetAlaCarteCatalog(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("A la carte options retrieved", c.service.GetAlaCarteCatalog(ctx.UserContext())))
}
