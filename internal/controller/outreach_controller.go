package controller

import (
	"propscore-webapp-be/internal/dto"
	"propscore-webapp-be/internal/pkg/serverutils"
	"propscore-webapp-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOutreachController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
}

type outreachController struct {
	outreachService service.IOutreachService
}

func NewOutreachController(outreachService service.IOutreachService) IOutreachController {
	return &outreachController{
		outreachService: outreachService,
	}
}

func (c *outreachController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/outreach")
	h.Post("", c.Generate)
}

func (c *outreachController) Generate(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)
	token := serverutils.AuthToken(ctx)

	var req dto.OutreachRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.outreachService.GenerateMessages(ctx.Context(), userID, token, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate outreach messages", res))
}
