package controller

import (
	"propscore-webapp-be/internal/dto"
	"propscore-webapp-be/internal/pkg/serverutils"
	"propscore-webapp-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
}

type reportController struct {
	reportService service.IReportService
}

func NewReportController(reportService service.IReportService) IReportController {
	return &reportController{
		reportService: reportService,
	}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/reports")
	h.Post("", c.Generate)
}

func (c *reportController) Generate(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)
	token := serverutils.AuthToken(ctx)

	var req dto.ReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reportService.GenerateReport(ctx.Context(), userID, token, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate report", res))
}
