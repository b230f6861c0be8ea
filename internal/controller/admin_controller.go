// FILE: internal/controller/admin_controller.go
package controller

import (
	"vpp-configurator/internal/dto"
	"vpp-configurator/internal/pkg/serverutils"
	"vpp-configurator/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)

	// Feature Catalog Management
	GetFeatureBoard(ctx *fiber.Ctx) error
	CreateFeature(ctx *fiber.Ctx) error
	UpdateFeature(ctx *fiber.Ctx) error
	DeleteFeature(ctx *fiber.Ctx) error
	ReorderFeatures(ctx *fiber.Ctx) error
	MoveFeature(ctx *fiber.Ctx) error
	PromoteFeature(ctx *fiber.Ctx) error

	// A La Carte Management
	GetOptionBoard(ctx *fiber.Ctx) error
	ReorderOptions(ctx *fiber.Ctx) error
	PublishOption(ctx *fiber.Ctx) error

	// Package Management
	GetPackages(ctx *fiber.Ctx) error
	UpdatePackage(ctx *fiber.Ctx) error
	GetPackageWarnings(ctx *fiber.Ctx) error

	GetCatalogReport(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.AdminService
}

func NewAdminController(service service.AdminService) IAdminController {
	return &adminController{service: service}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	admin := r.Group("/admin")

	// Static paths before :id so "reorder" and "board" are not read as ids
	features := admin.Group("/features")
	features.Get("/board", c.GetFeatureBoard)
	features.Put("/reorder", c.ReorderFeatures)
	features.Post("/", c.CreateFeature)
	features.Put("/:id", c.UpdateFeature)
	features.Delete("/:id", c.DeleteFeature)
	features.Post("/:id/move", c.MoveFeature)
	features.Post("/:id/promote", c.PromoteFeature)

	options := admin.Group("/options")
	options.Get("/board", c.GetOptionBoard)
	options.Put("/reorder", c.ReorderOptions)
	options.Put("/:id/publish", c.PublishOption)

	packages := admin.Group("/packages")
	packages.Get("/", c.GetPackages)
	packages.Get("/warnings", c.GetPackageWarnings)
	packages.Put("/:id", c.UpdatePackage)

	admin.Get("/catalog/report", c.GetCatalogReport)
}

// --- Features ---

// GetFeatureBoard returns the drag-and-drop board, costs included
// @Summary Feature board
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.Board[dto.FeatureResponse]
// @Router /api/admin/features/board [get]
func (c *adminController) GetFeatureBoard(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Feature board", c.service.GetFeatureBoard(ctx.UserContext())))
}

func (c *adminController) CreateFeature(ctx *fiber.Ctx) error {
	var req dto.CreateFeatureRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	res, err := c.service.CreateFeature(ctx.UserContext(), req)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Feature created", res))
}

func (c *adminController) UpdateFeature(ctx *fiber.Ctx) error {
	var req dto.UpdateFeatureRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	res, err := c.service.UpdateFeature(ctx.UserContext(), ctx.Params("id"), req)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature updated", res))
}

func (c *adminController) DeleteFeature(ctx *fiber.Ctx) error {
	if err := c.service.DeleteFeature(ctx.UserContext(), ctx.Params("id")); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Feature deleted", nil))
}

// ReorderFeatures persists a whole board layout through the batch committer
// @Summary Reorder the feature board
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.ReorderRequest true "Ids per column"
// @Success 200 {object} dto.ReorderResponse
// @Failure 502 {object} serverutils.Response[any] "Partial commit"
// @Router /api/admin/features/reorder [put]
func (c *adminController) ReorderFeatures(ctx *fiber.Ctx) error {
	var req dto.ReorderRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	res, err := c.service.ReorderFeatures(ctx.UserContext(), req)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature order saved", res))
}

func (c *adminController) MoveFeature(ctx *fiber.Ctx) error {
	var req dto.MoveFeatureRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	res, err := c.service.MoveFeature(ctx.UserContext(), ctx.Params("id"), req)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature moved", res))
}

func (c *adminController) PromoteFeature(ctx *fiber.Ctx) error {
	res, err := c.service.PromoteFeatureToOption(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Feature promoted to a la carte option", res))
}

// --- A la carte ---

func (c *adminController) GetOptionBoard(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Option board", c.service.GetOptionBoard(ctx.UserContext())))
}

func (c *adminController) ReorderOptions(ctx *fiber.Ctx) error {
	var req dto.ReorderRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	res, err := c.service.ReorderOptions(ctx.UserContext(), req)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Option order saved", res))
}

func (c *adminController) PublishOption(ctx *fiber.Ctx) error {
	var req dto.PublishOptionRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	res, err := c.service.PublishOption(ctx.UserContext(), ctx.Params("id"), *req.Published)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Option updated", res))
}

// --- Packages ---

func (c *adminController) GetPackages(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Packages retrieved", c.service.GetPackages(ctx.UserContext())))
}

func (c *adminController) UpdatePackage(ctx *fiber.Ctx) error {
	var req dto.UpdatePackageRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	res, err := c.service.UpdatePackage(ctx.UserContext(), ctx.Params("id"), req)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Package updated", res))
}

func (c *adminController) GetPackageWarnings(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Package warnings", c.service.GetPackageWarnings(ctx.UserContext())))
}

// GetCatalogReport exposes whether the storefront is serving demo data and which records were dropped
func (c *adminController) GetCatalogReport(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Catalog report", c.service.GetCatalogReport(ctx.UserContext())))
}
