package handler

import (
	"net/http/httptest"
	"testing"

	"refund-decision-be/internal/pkg/logger"
	internalWS "refund-decision-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "ws-secret"

func newApp() *fiber.App {
	app := fiber.New()
	hub := internalWS.NewHub(nil, logger.NewNopLogger())
	NewNotificationHandler(hub, secret, logger.NewNopLogger()).RegisterRoutes(app)
	return app
}

func token(t *testing.T) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "agent-1"}).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestServeWs_Handshake(t *testing.T) {
	app := newApp()
	caseID := uuid.NewString()

	cases := []struct {
		name   string
		target string
		status int
	}{
		{"missing token", "/ws/cases/" + caseID, fiber.StatusUnauthorized},
		{"bad token", "/ws/cases/" + caseID + "?token=garbage", fiber.StatusUnauthorized},
		{"bad case id", "/ws/cases/not-a-uuid?token=" + token(t), fiber.StatusBadRequest},
		{"plain http", "/ws/cases/" + caseID + "?token=" + token(t), fiber.StatusUpgradeRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tc.target, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
