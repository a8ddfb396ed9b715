package controller

import (
	"fmt"

	"crm-insights-be/internal/pkg/serverutils"
	"crm-insights-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IInsightController interface {
	RegisterRoutes(r fiber.Router)
	Summary(ctx *fiber.Ctx) error
	Segment(ctx *fiber.Ctx) error
	Upsell(ctx *fiber.Ctx) error
	Info(ctx *fiber.Ctx) error
}

type insightController struct {
	insightService service.IInsightService
}

func NewInsightController(insightService service.IInsightService) IInsightController {
	return &insightController{
		insightService: insightService,
	}
}

func (c *insightController) RegisterRoutes(r fiber.Router) {
	r.Get("summary", c.Summary)
	r.Get("segment/:segment", c.Segment)
	r.Get("upsell", c.Upsell)
	r.Get("info", c.Info)
}

func (c *insightController) Summary(ctx *fiber.Ctx) error {
	res, err := c.insightService.Summary(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get summary", res))
}

func (c *insightController) Segment(ctx *fiber.Ctx) error {
	segment := ctx.Params("segment")

	res, err := c.insightService.Segment(ctx.Context(), segment)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, fmt.Sprintf("Segment '%s' not found", segment)))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get segment", res))
}

func (c *insightController) Upsell(ctx *fiber.Ctx) error {
	res, err := c.insightService.UpsellCandidates(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get upsell candidates", res))
}

func (c *insightController) Info(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get service info", c.insightService.Info(ctx.Context())))
}
