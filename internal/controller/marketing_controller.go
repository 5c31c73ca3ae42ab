package controller

import (
	"propscore-webapp-be/internal/dto"
	"propscore-webapp-be/internal/pkg/serverutils"
	"propscore-webapp-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Marketing-site endpoints: pricing catalog and the contact form. These are
// public and do not touch the session tracker.

type IMarketingController interface {
	RegisterRoutes(r fiber.Router)
	Plans(ctx *fiber.Ctx) error
	Contact(ctx *fiber.Ctx) error
}

type marketingController struct {
	planService    service.IPlanService
	contactService service.IContactService
}

func NewMarketingController(planService service.IPlanService, contactService service.IContactService) IMarketingController {
	return &marketingController{
		planService:    planService,
		contactService: contactService,
	}
}

func (c *marketingController) RegisterRoutes(r fiber.Router) {
	r.Get("/plans", c.Plans)
	r.Post("/contact", c.Contact)
}

func (c *marketingController) Plans(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get plans", c.planService.GetPlans()))
}

func (c *marketingController) Contact(ctx *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.contactService.SubmitMessage(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success submit contact message", res))
}
