package controller

import (
	"paper-rag-be/internal/pkg/serverutils"
	"paper-rag-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISystemController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	ClearAll(ctx *fiber.Ctx) error
}

type systemController struct {
	documentService service.IDocumentService
}

func NewSystemController(documentService service.IDocumentService) ISystemController {
	return &systemController{
		documentService: documentService,
	}
}

func (c *systemController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/system/v1")
	h.Get("health", c.Health)
	h.Delete("clear-all", c.ClearAll)
}

func (c *systemController) Health(ctx *fiber.Ctx) error {
	res, err := c.documentService.Health(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Service healthy", res))
}

func (c *systemController) ClearAll(ctx *fiber.Ctx) error {
	res, err := c.documentService.ClearAll(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success clear all data", res))
}
