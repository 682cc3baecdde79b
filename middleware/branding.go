package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/iSuccessHUB/assetshield-app-sub000/config"
	"github.com/iSuccessHUB/assetshield-app-sub000/models"
)

// BrandingLocalsKey is where the resolver stores the per-request branding.
const BrandingLocalsKey = "branding"

// BrandingContext is the white-label branding attached to a request whose
// host matched a verified customer domain. A nil context means default
// platform branding.
type BrandingContext struct {
	CustomerID      uint     `json:"customer_id"`
	FirmName        string   `json:"firm_name"`
	PrimaryColor    string   `json:"primary_color"`
	SecondaryColor  string   `json:"secondary_color"`
	AccentColor     string   `json:"accent_color"`
	HeroTitle       string   `json:"hero_title"`
	HeroSubtitle    string   `json:"hero_subtitle"`
	AboutContent    string   `json:"about_content"`
	ServicesContent string   `json:"services_content"`
	LogoURL         string   `json:"logo_url"`
	Features        []string `json:"features"`
}

// Paths that never resolve tenant branding
var excludedPathPrefixes = []string{
	"/dashboard",
	"/api/v1",
	"/auth",
	"/checkout",
	"/webhooks",
	"/static",
	"/ws",
	"/health",
}

// BrandingLookup resolves a host to a branding context, or nil when the host
// has no verified domain. Injectable so middleware tests do not need a DB.
type BrandingLookup func(host string) (*BrandingContext, error)

// GetBranding returns the branding resolved for this request, nil for
// default branding.
func GetBranding(c *fiber.Ctx) *BrandingContext {
	if bc, ok := c.Locals(BrandingLocalsKey).(*BrandingContext); ok {
		return bc
	}
	return nil
}

// BrandingResolver maps the request's Host header to a tenant's white-label
// configuration. Resolution failure is never fatal: any miss or lookup error
// degrades to default branding. Every request re-queries the store; there is
// no cache to invalidate.
func BrandingResolver(db *gorm.DB) fiber.Handler {
	return BrandingResolverWithLookup(DatabaseBrandingLookup(db))
}

func BrandingResolverWithLookup(lookup BrandingLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		host := StripPort(c.Hostname())

		if IsPlatformHost(host) || IsExcludedPath(c.Path()) {
			return c.Next()
		}

		branding, err := lookup(host)
		if err != nil || branding == nil {
			// Fail open to default branding
			return c.Next()
		}

		c.Locals(BrandingLocalsKey, branding)
		return c.Next()
	}
}

// StripPort removes a trailing :port from a host header value.
func StripPort(host string) string {
	if i := strings.LastIndex(host, ":"); i != -1 {
		return host[:i]
	}
	return host
}

// IsPlatformHost reports whether the host belongs to the platform itself
// (localhost, the apex site, deploy-platform preview domains).
func IsPlatformHost(host string) bool {
	host = strings.ToLower(host)
	for _, h := range config.AppConfig.PlatformHosts {
		if host == strings.ToLower(h) {
			return true
		}
	}
	for _, suffix := range config.AppConfig.PlatformHostSuffixes {
		if strings.HasSuffix(host, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}

// IsExcludedPath reports whether the request path skips tenant resolution.
func IsExcludedPath(path string) bool {
	for _, prefix := range excludedPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// DatabaseBrandingLookup queries a verified customer domain and assembles the
// branding context with hard-coded fallbacks for unset fields.
func DatabaseBrandingLookup(db *gorm.DB) BrandingLookup {
	return func(host string) (*BrandingContext, error) {
		var domain models.CustomerDomain
		if err := db.Where("domain = ? AND verification_status = ?", host, models.DomainVerified).
			First(&domain).Error; err != nil {
			return nil, err
		}

		var customer models.Customer
		if err := db.First(&customer, domain.CustomerID).Error; err != nil {
			return nil, err
		}

		var wlc models.WhiteLabelConfig
		if err := db.Where("customer_id = ?", domain.CustomerID).First(&wlc).Error; err != nil {
			return nil, err
		}

		return AssembleBranding(&customer, &wlc), nil
	}
}

// AssembleBranding fills a BrandingContext from a customer's config,
// substituting defaults for any unset field.
func AssembleBranding(customer *models.Customer, wlc *models.WhiteLabelConfig) *BrandingContext {
	bc := &BrandingContext{
		CustomerID:      customer.ID,
		FirmName:        customer.FirmName,
		PrimaryColor:    wlc.PrimaryColor,
		SecondaryColor:  wlc.SecondaryColor,
		AccentColor:     wlc.AccentColor,
		HeroTitle:       wlc.HeroTitle,
		HeroSubtitle:    wlc.HeroSubtitle,
		AboutContent:    wlc.AboutContent,
		ServicesContent: wlc.ServicesContent,
		LogoURL:         wlc.LogoURL,
		Features:        models.DecodeFeatures(wlc.FeaturesEnabled),
	}

	if bc.PrimaryColor == "" {
		bc.PrimaryColor = "#1a365d"
	}
	if bc.SecondaryColor == "" {
		bc.SecondaryColor = "#2d3748"
	}
	if bc.AccentColor == "" {
		bc.AccentColor = "#d69e2e"
	}
	if bc.HeroTitle == "" {
		bc.HeroTitle = fmt.Sprintf("Protect Your Assets with %s", customer.FirmName)
	}
	if bc.HeroSubtitle == "" {
		bc.HeroSubtitle = "Take our free risk assessment and discover how exposed your wealth really is."
	}

	return bc
}
