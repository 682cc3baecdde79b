package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/iSuccessHUB/assetshield-app-sub000/config"
	"github.com/iSuccessHUB/assetshield-app-sub000/models"
)

func setupPlatformHosts() {
	config.AppConfig.PlatformHosts = []string{"localhost", "127.0.0.1", "assetshield.app", "www.assetshield.app"}
	config.AppConfig.PlatformHostSuffixes = []string{".onrender.com", ".railway.app", ".vercel.app"}
}

func brandingTestApp(lookup BrandingLookup) *fiber.App {
	app := fiber.New()
	app.Use(BrandingResolverWithLookup(lookup))
	handler := func(c *fiber.Ctx) error {
		branding := GetBranding(c)
		if branding == nil {
			return c.JSON(fiber.Map{"resolved": false})
		}
		return c.JSON(fiber.Map{"resolved": true, "firm_name": branding.FirmName})
	}
	app.Get("/", handler)
	app.Get("/api/v1/leads", handler)
	app.Get("/dashboard", handler)
	return app
}

func resolveHost(t *testing.T, app *fiber.App, host, path string) map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	req.Host = host
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestBrandingResolverVerifiedDomain(t *testing.T) {
	setupPlatformHosts()
	app := brandingTestApp(func(host string) (*BrandingContext, error) {
		if host == "smithlaw.com" {
			return &BrandingContext{CustomerID: 1, FirmName: "Smith & Associates"}, nil
		}
		return nil, errors.New("not found")
	})

	body := resolveHost(t, app, "smithlaw.com", "/")
	assert.Equal(t, true, body["resolved"])
	assert.Equal(t, "Smith & Associates", body["firm_name"])
}

func TestBrandingResolverStripsPort(t *testing.T) {
	setupPlatformHosts()
	app := brandingTestApp(func(host string) (*BrandingContext, error) {
		if host == "smithlaw.com" {
			return &BrandingContext{CustomerID: 1, FirmName: "Smith & Associates"}, nil
		}
		return nil, errors.New("not found")
	})

	body := resolveHost(t, app, "smithlaw.com:8443", "/")
	assert.Equal(t, true, body["resolved"])
}

func TestBrandingResolverPlatformHostsSkipLookup(t *testing.T) {
	setupPlatformHosts()
	app := brandingTestApp(func(host string) (*BrandingContext, error) {
		t.Errorf("lookup should not run for platform host %s", host)
		return nil, nil
	})

	for _, host := range []string{"localhost:3000", "assetshield.app", "www.assetshield.app", "preview-abc.onrender.com"} {
		body := resolveHost(t, app, host, "/")
		assert.Equal(t, false, body["resolved"], "host %s", host)
	}
}

func TestBrandingResolverExcludedPathsSkipLookup(t *testing.T) {
	setupPlatformHosts()
	app := brandingTestApp(func(host string) (*BrandingContext, error) {
		t.Errorf("lookup should not run for excluded path")
		return nil, nil
	})

	for _, path := range []string{"/api/v1/leads", "/dashboard"} {
		body := resolveHost(t, app, "smithlaw.com", path)
		assert.Equal(t, false, body["resolved"], "path %s", path)
	}
}

func TestBrandingResolverFailsOpen(t *testing.T) {
	setupPlatformHosts()
	app := brandingTestApp(func(host string) (*BrandingContext, error) {
		return nil, errors.New("database unreachable")
	})

	body := resolveHost(t, app, "unknown-firm.com", "/")
	assert.Equal(t, false, body["resolved"])
}

func TestGetBrandingOutsideResolver(t *testing.T) {
	app := fiber.New()
	ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
	defer app.ReleaseCtx(ctx)

	assert.Nil(t, GetBranding(ctx))

	branding := &BrandingContext{CustomerID: 9, FirmName: "Smith & Associates"}
	ctx.Locals(BrandingLocalsKey, branding)
	assert.Equal(t, branding, GetBranding(ctx))
}

func TestStripPort(t *testing.T) {
	assert.Equal(t, "smithlaw.com", StripPort("smithlaw.com:443"))
	assert.Equal(t, "smithlaw.com", StripPort("smithlaw.com"))
	assert.Equal(t, "localhost", StripPort("localhost:3000"))
}

func TestIsExcludedPath(t *testing.T) {
	assert.True(t, IsExcludedPath("/dashboard"))
	assert.True(t, IsExcludedPath("/api/v1/branding"))
	assert.True(t, IsExcludedPath("/webhooks/stripe"))
	assert.True(t, IsExcludedPath("/health"))
	assert.False(t, IsExcludedPath("/"))
	assert.False(t, IsExcludedPath("/api/public/leads"))
}

func TestIsPlatformHost(t *testing.T) {
	setupPlatformHosts()

	assert.True(t, IsPlatformHost("localhost"))
	assert.True(t, IsPlatformHost("ASSETSHIELD.APP"))
	assert.True(t, IsPlatformHost("myapp.vercel.app"))
	assert.False(t, IsPlatformHost("smithlaw.com"))
	assert.False(t, IsPlatformHost("assetshield.app.evil.com"))
}

func TestAssembleBrandingDefaults(t *testing.T) {
	customer := &models.Customer{FirmName: "Smith & Associates"}
	customer.ID = 3

	bc := AssembleBranding(customer, &models.WhiteLabelConfig{})

	assert.Equal(t, uint(3), bc.CustomerID)
	assert.Equal(t, "#1a365d", bc.PrimaryColor)
	assert.Equal(t, "#2d3748", bc.SecondaryColor)
	assert.Equal(t, "#d69e2e", bc.AccentColor)
	assert.Equal(t, "Protect Your Assets with Smith & Associates", bc.HeroTitle)
	assert.NotEmpty(t, bc.HeroSubtitle)
}

func TestAssembleBrandingCustomValuesWin(t *testing.T) {
	customer := &models.Customer{FirmName: "Smith & Associates"}
	customer.ID = 3

	bc := AssembleBranding(customer, &models.WhiteLabelConfig{
		PrimaryColor: "#000000",
		HeroTitle:    "Custom Title",
	})

	assert.Equal(t, "#000000", bc.PrimaryColor)
	assert.Equal(t, "Custom Title", bc.HeroTitle)
	assert.Equal(t, "#2d3748", bc.SecondaryColor)
}
