package controller

import (
	"io"
	"log"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iSuccessHUB/assetshield-app-sub000/middleware"
)

func pagesTestApp(branding *middleware.BrandingContext) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if branding != nil {
			c.Locals(middleware.BrandingLocalsKey, branding)
		}
		return c.Next()
	})

	pc := NewPagesController(log.New(io.Discard, "", 0))
	app.Get("/", pc.Landing)
	app.Get("/api/public/branding", pc.PublicBranding)
	return app
}

func TestLandingRendersTenantBranding(t *testing.T) {
	app := pagesTestApp(&middleware.BrandingContext{
		CustomerID:   1,
		FirmName:     "Smith & Associates",
		PrimaryColor: "#123456",
		HeroTitle:    "Shield Your Wealth",
		HeroSubtitle: "Free assessment in minutes.",
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	html := string(body)

	assert.Contains(t, html, "Smith &amp; Associates")
	assert.Contains(t, html, "#123456")
	assert.Contains(t, html, "Shield Your Wealth")
}

func TestLandingFallsBackToDefaultBranding(t *testing.T) {
	app := pagesTestApp(nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "AssetShield")
}

func TestPublicBrandingJSON(t *testing.T) {
	app := pagesTestApp(&middleware.BrandingContext{CustomerID: 1, FirmName: "Smith & Associates"})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/public/branding", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"default":false`)
	assert.Contains(t, string(body), `"customer_id":1`)
}

func TestPublicBrandingDefault(t *testing.T) {
	app := pagesTestApp(nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/public/branding", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"default":true`)
}
