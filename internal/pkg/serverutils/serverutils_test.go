package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func decode(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestParseToken(t *testing.T) {
	token := signed(t, testSecret, jwt.MapClaims{"user_id": "agent-7", "exp": time.Now().Add(time.Hour).Unix()})

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "agent-7", claims["user_id"])

	_, err = ParseToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken(token, "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJwtMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/", NewJwtMiddleware(testSecret), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed(t, testSecret, jwt.MapClaims{"user_id": "agent-7"}))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "agent-7", string(body))
}

type sampleRequest struct {
	Notes string `json:"refund_notes" validate:"max=5"`
	Date  string `json:"first_activity_date" validate:"omitempty,datetime=2006-01-02"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Notes: "ok", Date: "2026-01-02"}))

	err := ValidateRequest(sampleRequest{Notes: "far too long", Date: "02/01/2026"})
	var verr *RequestValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "refund_notes")
	assert.Contains(t, verr.Fields, "first_activity_date")
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/validation", func(c *fiber.Ctx) error {
		return &RequestValidationError{Fields: map[string]string{"refund_notes": "is required"}}
	})
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.ErrUpgradeRequired })
	app.Get("/plain", func(c *fiber.Ctx) error { return errors.New("boom") })
	app.Get("/panic", func(c *fiber.Ctx) error { panic("kaboom") })

	cases := []struct {
		path   string
		status int
	}{
		{"/validation", fiber.StatusBadRequest},
		{"/fiber", fiber.StatusUpgradeRequired},
		{"/plain", fiber.StatusInternalServerError},
		{"/panic", fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			body := decode(t, resp.Body)
			assert.Equal(t, false, body["success"])
			assert.EqualValues(t, tc.status, body["code"])
		})
	}
}
