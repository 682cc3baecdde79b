package controller

import (
	"bytes"
	"html/template"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/iSuccessHUB/assetshield-app-sub000/middleware"
	"github.com/iSuccessHUB/assetshield-app-sub000/utils"
)

type PagesController struct {
	Logger *log.Logger
}

func NewPagesController(logger *log.Logger) *PagesController {
	return &PagesController{Logger: logger}
}

// defaultBranding is what the landing page renders when the host did not
// resolve to any tenant. Unknown hosts still get a page, never a 404.
var defaultBranding = middleware.BrandingContext{
	FirmName:       "AssetShield",
	PrimaryColor:   "#1a365d",
	SecondaryColor: "#2d3748",
	AccentColor:    "#d69e2e",
	HeroTitle:      "Protect Your Assets Before It's Too Late",
	HeroSubtitle:   "Take our free risk assessment and discover how exposed your wealth really is.",
}

var landingTemplate = template.Must(template.New("landing").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.FirmName}} | Asset Protection</title>
<style>
  :root {
    --primary: {{.PrimaryColor}};
    --secondary: {{.SecondaryColor}};
    --accent: {{.AccentColor}};
  }
  body { margin: 0; font-family: Georgia, 'Times New Roman', serif; color: var(--secondary); }
  header { background: var(--primary); color: #fff; padding: 20px 40px; display: flex; align-items: center; }
  header img { height: 48px; margin-right: 16px; }
  header h1 { font-size: 22px; margin: 0; }
  .hero { background: var(--primary); color: #fff; text-align: center; padding: 80px 20px; }
  .hero h2 { font-size: 40px; margin: 0 0 16px; }
  .hero p { font-size: 18px; opacity: .85; max-width: 640px; margin: 0 auto 32px; }
  .cta { display: inline-block; background: var(--accent); color: #fff; padding: 14px 36px;
         border-radius: 4px; text-decoration: none; font-size: 18px; }
  section { max-width: 860px; margin: 0 auto; padding: 48px 20px; }
  section h3 { color: var(--primary); font-size: 26px; }
  footer { background: var(--secondary); color: #fff; text-align: center; padding: 24px; font-size: 14px; }
</style>
</head>
<body>
<header>
  {{if .LogoURL}}<img src="{{.LogoURL}}" alt="{{.FirmName}}">{{end}}
  <h1>{{.FirmName}}</h1>
</header>
<div class="hero">
  <h2>{{.HeroTitle}}</h2>
  <p>{{.HeroSubtitle}}</p>
  <a class="cta" href="#assessment">Start Free Risk Assessment</a>
</div>
{{if .AboutContent}}
<section>
  <h3>About {{.FirmName}}</h3>
  <p>{{.AboutContent}}</p>
</section>
{{end}}
{{if .ServicesContent}}
<section>
  <h3>Our Services</h3>
  <p>{{.ServicesContent}}</p>
</section>
{{end}}
<section id="assessment">
  <h3>Free Risk Assessment</h3>
  <p>Answer a few questions about your assets and we will show you where you are exposed.</p>
</section>
<footer>&copy; {{.FirmName}}. Attorney advertising. Prior results do not guarantee a similar outcome.</footer>
</body>
</html>
`))

// Landing renders the tenant's branded landing page, or the platform default
// when no tenant resolved for this host.
func (pc *PagesController) Landing(c *fiber.Ctx) error {
	branding := middleware.GetBranding(c)
	if branding == nil {
		branding = &defaultBranding
	}

	var buf bytes.Buffer
	if err := landingTemplate.Execute(&buf, branding); err != nil {
		pc.Logger.Printf("landing render failed: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to render page", nil)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

// PublicBranding exposes the resolved branding as JSON for client-side
// rendering of the assessment widget.
func (pc *PagesController) PublicBranding(c *fiber.Ctx) error {
	branding := middleware.GetBranding(c)
	if branding == nil {
		return c.JSON(utils.SuccessResponse(fiber.Map{
			"default":  true,
			"branding": defaultBranding,
		}))
	}
	return c.JSON(utils.SuccessResponse(fiber.Map{
		"default":  false,
		"branding": branding,
	}))
}
