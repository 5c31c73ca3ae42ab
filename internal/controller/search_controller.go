package controller

import (
	"propscore-webapp-be/internal/dto"
	"propscore-webapp-be/internal/pkg/serverutils"
	"propscore-webapp-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
	ConfirmProperty(ctx *fiber.Ctx) error
	PredictScore(ctx *fiber.Ctx) error
	Complete(ctx *fiber.Ctx) error
}

type searchController struct {
	searchService service.ISearchService
}

func NewSearchController(searchService service.ISearchService) ISearchController {
	return &searchController{
		searchService: searchService,
	}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/search")
	h.Post("", c.Search)
	h.Post("/property", c.ConfirmProperty)
	h.Post("/score", c.PredictScore)
	h.Post("/complete", c.Complete)
}

func (c *searchController) Search(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)
	token := serverutils.AuthToken(ctx)

	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.searchService.SearchAddress(ctx.Context(), userID, token, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search address", res))
}

func (c *searchController) ConfirmProperty(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)
	token := serverutils.AuthToken(ctx)

	var req dto.ConfirmPropertyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.searchService.ConfirmProperty(ctx.Context(), userID, token, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success confirm property", res))
}

func (c *searchController) PredictScore(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)
	token := serverutils.AuthToken(ctx)

	var req dto.ScoreRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.searchService.PredictScore(ctx.Context(), userID, token, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success predict score", res))
}

func (c *searchController) Complete(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)

	var req dto.CompleteSearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.searchService.CompleteSearch(ctx.Context(), userID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success complete search", res))
}
