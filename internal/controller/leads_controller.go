package controller

import (
	"propscore-webapp-be/internal/pkg/serverutils"
	"propscore-webapp-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILeadsController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type leadsController struct {
	leadsService service.ILeadsService
}

func NewLeadsController(leadsService service.ILeadsService) ILeadsController {
	return &leadsController{
		leadsService: leadsService,
	}
}

func (c *leadsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/leads")
	h.Post("/upload", c.Upload)
}

func (c *leadsController) Upload(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)
	token := serverutils.AuthToken(ctx)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "a CSV file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	allowDemo := ctx.FormValue("allow_demo") == "true"

	res, err := c.leadsService.UploadAndRank(ctx.Context(), userID, token, fileHeader.Filename, file, allowDemo)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success rank lead list", res))
}
