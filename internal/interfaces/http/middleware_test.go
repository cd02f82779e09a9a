package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func buildCORSApp() *fiber.App {
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	app.Use(apphttp.CORS(config.CORSConfig{
		AllowedOrigins:  []string{"http://localhost:5173"},
		AllowedSuffixes: []string{".vercel.app"},
	}))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	return app
}

func getWithOrigin(t *testing.T, app *fiber.App, origin string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", origin)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// CORS
// ──────────────────────────────────────────────────────────────────────────────

func TestCORS_OrigenExacto_Permitido(t *testing.T) {
	resp := getWithOrigin(t, buildCORSApp(), "http://localhost:5173")
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestCORS_SufijoDeHosting_Permitido(t *testing.T) {
	resp := getWithOrigin(t, buildCORSApp(), "https://almacen-front.vercel.app")
	assert.Equal(t, "https://almacen-front.vercel.app", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCORS_OrigenDesconocido_SinCabecera(t *testing.T) {
	resp := getWithOrigin(t, buildCORSApp(), "https://evil.example.com")
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	// CORS no bloquea la respuesta en el servidor; la decisión la toma el navegador.
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCORS_SufijoSinPunto_NoEngañaAlFiltro(t *testing.T) {
	resp := getWithOrigin(t, buildCORSApp(), "https://evilvercel.app")
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

// ──────────────────────────────────────────────────────────────────────────────
// RequestLogger
// ──────────────────────────────────────────────────────────────────────────────

func TestRequestLogger_AgregaRequestID(t *testing.T) {
	resp := getWithOrigin(t, buildCORSApp(), "")
	assert.Len(t, resp.Header.Get("X-Request-ID"), 8)
}
