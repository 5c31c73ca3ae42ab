package controller

import (
	"propscore-webapp-be/internal/dto"
	"propscore-webapp-be/internal/pkg/serverutils"
	"propscore-webapp-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	CurrentQuery(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	ClearHistory(ctx *fiber.Ctx) error
	LatestSearch(ctx *fiber.Ctx) error
	FindSearch(ctx *fiber.Ctx) error
	ArchivedSearches(ctx *fiber.Ctx) error
	AddressData(ctx *fiber.Ctx) error
	PatchAddressData(ctx *fiber.Ctx) error
	ClearAddressData(ctx *fiber.Ctx) error
	AddressHistory(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
}

func NewSessionController(sessionService service.ISessionService) ISessionController {
	return &sessionController{
		sessionService: sessionService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session")
	h.Get("", c.Show)
	h.Delete("", c.Clear)
	h.Get("/current", c.CurrentQuery)
	h.Get("/history", c.History)
	h.Delete("/history", c.ClearHistory)
	h.Get("/history/latest", c.LatestSearch)
	h.Get("/history/find", c.FindSearch)
	h.Get("/archive", c.ArchivedSearches)

	a := r.Group("/address-context")
	a.Get("", c.AddressData)
	a.Patch("", c.PatchAddressData)
	a.Delete("", c.ClearAddressData)
	a.Get("/history", c.AddressHistory)
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)
	res := c.sessionService.InitializeSession(userID)
	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}

func (c *sessionController) Clear(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)
	c.sessionService.ClearSession(userID)
	return ctx.JSON(serverutils.SuccessResponse("Success clear session", nil))
}

func (c *sessionController) CurrentQuery(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)
	query := c.sessionService.CurrentQuery(userID)
	if query == nil {
		return fiber.NewError(fiber.StatusNotFound, "no active search")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get current search", query))
}

func (c *sessionController) History(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)
	history := c.sessionService.SearchHistory(userID)
	return ctx.JSON(serverutils.SuccessResponse("Success get search history", history))
}

func (c *sessionController) ClearHistory(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)
	c.sessionService.ClearHistory(userID)
	return ctx.JSON(serverutils.SuccessResponse("Success clear search history", nil))
}

func (c *sessionController) LatestSearch(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)
	query := c.sessionService.LatestSearch(userID)
	if query == nil {
		return fiber.NewError(fiber.StatusNotFound, "no completed searches")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get latest search", query))
}

func (c *sessionController) FindSearch(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)
	address := ctx.Query("address")
	if address == "" {
		return fiber.NewError(fiber.StatusBadRequest, "address query parameter is required")
	}

	query := c.sessionService.FindSearchByAddress(userID, address)
	if query == nil {
		return fiber.NewError(fiber.StatusNotFound, "no search found for that address")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success find search", query))
}

func (c *sessionController) ArchivedSearches(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)

	archives, err := c.sessionService.ArchivedSearches(ctx.Context(), userID, page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get archived searches", archives))
}

func (c *sessionController) AddressData(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)
	data := c.sessionService.AddressData(userID)
	return ctx.JSON(serverutils.SuccessResponse("Success get address context", data))
}

func (c *sessionController) PatchAddressData(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)

	var req dto.AddressPatchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	data := c.sessionService.PatchAddressData(userID, &req)
	return ctx.JSON(serverutils.SuccessResponse("Success update address context", data))
}

func (c *sessionController) ClearAddressData(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)
	c.sessionService.ClearAddressData(userID)
	return ctx.JSON(serverutils.SuccessResponse("Success clear address context", nil))
}

func (c *sessionController) AddressHistory(ctx *fiber.Ctx) error {
	userID := serverutils.UserID(ctx)
	history := c.sessionService.AddressHistory(userID)
	return ctx.JSON(serverutils.SuccessResponse("Success get address history", history))
}
