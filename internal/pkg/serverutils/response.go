package serverutils

import (
	"errors"

	"propscore-webapp-be/pkg/apierror"
	"propscore-webapp-be/pkg/session"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func SuccessResponse(message string, data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	}
}

func ErrorResponse(code int, message string) fiber.Map {
	return fiber.Map{
		"success": false,
		"code":    code,
		"message": message,
	}
}

func ValidateRequest(req interface{}) error {
	return validate.Struct(req)
}

// ErrorHandlerMiddleware converts errors escaping controllers into JSON
// envelopes. Session-tracker sentinels map to client errors; everything else
// is a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, err.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		var failure *apierror.Failure
		if errors.As(err, &failure) {
			code := fiber.StatusBadGateway
			if failure.Classification.ShowUpgradePrompt {
				code = fiber.StatusTooManyRequests
			}
			body := ErrorResponse(code, failure.Classification.ErrorMessage)
			body["classification"] = failure.Classification
			if failure.Classification.ShowUpgradePrompt {
				body["upgrade_url"] = "/pricing"
			}
			return ctx.Status(code).JSON(body)
		}

		switch {
		case errors.Is(err, session.ErrNoSession), errors.Is(err, session.ErrNoActiveQuery):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, err.Error()))
		case errors.Is(err, session.ErrQueryMismatch):
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(fiber.StatusConflict, err.Error()))
		case errors.Is(err, session.ErrInvalidTransition), errors.Is(err, session.ErrNotScored):
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse(fiber.StatusUnprocessableEntity, err.Error()))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
