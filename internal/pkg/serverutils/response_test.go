package serverutils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"propscore-webapp-be/pkg/apierror"
	"propscore-webapp-be/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runThroughMiddleware(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()

	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/boom", func(c *fiber.Ctx) error {
		return err
	})

	resp, reqErr := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, reqErr)
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestErrorHandlerSessionErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"no session", session.ErrNoSession, fiber.StatusNotFound},
		{"no active query", session.ErrNoActiveQuery, fiber.StatusNotFound},
		{"query mismatch", session.ErrQueryMismatch, fiber.StatusConflict},
		{"invalid transition", session.ErrInvalidTransition, fiber.StatusUnprocessableEntity},
		{"not scored", session.ErrNotScored, fiber.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := runThroughMiddleware(t, tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestErrorHandlerUsageLimitFailure(t *testing.T) {
	err := &apierror.Failure{Classification: apierror.Classification{
		ErrorMessage:      "You've reached your address search limit (10/10). Upgrade your plan to continue.",
		ShowUpgradePrompt: true,
	}}

	code, body := runThroughMiddleware(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, code)
	assert.Equal(t, "/pricing", body["upgrade_url"])
	assert.Contains(t, body["message"], "10/10")

	cls, ok := body["classification"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, cls["show_upgrade_prompt"])
}

func TestErrorHandlerUpstreamFailure(t *testing.T) {
	err := &apierror.Failure{Classification: apierror.Classification{
		ErrorMessage: "The scoring service hit a problem. Please try again in a moment.",
	}}

	code, body := runThroughMiddleware(t, err)
	assert.Equal(t, fiber.StatusBadGateway, code)
	_, hasUpgrade := body["upgrade_url"]
	assert.False(t, hasUpgrade)
}

func TestErrorHandlerFiberError(t *testing.T) {
	code, body := runThroughMiddleware(t, fiber.NewError(fiber.StatusNotFound, "nope"))
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "nope", body["message"])
}
