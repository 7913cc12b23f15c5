package router

import (
	"event_ticketing/config"
	"event_ticketing/gateway"
	"event_ticketing/handler"
	"event_ticketing/helper"
	"event_ticketing/service"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp wires the routes against a gateway that always answers 503, so
// verification stops at the gateway call and no store is touched.
func newTestApp(t *testing.T) (*fiber.App, func() []string) {
	t.Helper()

	var mu sync.Mutex
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":false,"message":"down"}`))
	}))
	t.Cleanup(srv.Close)

	cfg := config.GatewayConfig{BaseURL: srv.URL, SecretKey: "sk_test", Currency: "NGN", Timeout: 2 * time.Second}
	payments := service.NewPaymentService(nil, nil, nil, nil, nil, gateway.NewClient(cfg), nil, nil, cfg)
	h := handler.NewHandler(nil, nil, nil, payments, nil, nil, cfg.SecretKey)

	app := fiber.New()
	SetupRoutes(app, h, helper.NewTokenIssuer("secret", time.Hour))

	return app, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), paths...)
	}
}

func TestVerifyPayment_QueryReference(t *testing.T) {
	app, gatewayPaths := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/payments/verify?reference=AbCdEfGhIjKl", nil), 5000)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, []string{"/charges/AbCdEfGhIjKl"}, gatewayPaths())
}

func TestVerifyPayment_PathReference(t *testing.T) {
	app, gatewayPaths := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/payments/verify/AbCdEfGhIjKl", nil), 5000)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, []string{"/charges/AbCdEfGhIjKl"}, gatewayPaths())
}

func TestVerifyPayment_NoReference(t *testing.T) {
	app, gatewayPaths := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/payments/verify", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, gatewayPaths())
}

func TestPaymentPasses_RequiresToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/payments/AbCdEfGhIjKl/passes", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
