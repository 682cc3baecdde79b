package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"gorm.io/gorm"

	controller "github.com/iSuccessHUB/assetshield-app-sub000/controllers"
	"github.com/iSuccessHUB/assetshield-app-sub000/middleware"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	authLogger := log.New(os.Stdout, "AUTH: ", log.Ldate|log.Ltime|log.Lshortfile)

	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Public auth endpoints
	auth.Post("/login", controller.Login)
	auth.Post("/refresh", controller.RefreshToken)

	// Google OAuth for existing customers
	auth.Get("/google", controller.GoogleOAuth)
	auth.Get("/google/callback", controller.GoogleOAuthCallback)

	// Protected auth endpoints
	protectedAuth := auth.Group("", middleware.Protected())
	protectedAuth.Post("/change-password", controller.ChangePassword)
	protectedAuth.Get("/me", controller.GetCurrentUser)

	authLogger.Println("Authentication routes initialized successfully")
}

func SetupAPIRoutes(app *fiber.App, db *gorm.DB) {
	brandingController := controller.NewBrandingController(db, log.New(os.Stdout, "BRANDING: ", log.LstdFlags))
	domainController := controller.NewDomainController(db, log.New(os.Stdout, "DOMAIN: ", log.LstdFlags))
	leadHub := controller.NewLeadHub(log.New(os.Stdout, "LEADWS: ", log.LstdFlags))
	leadController := controller.NewLeadController(db, log.New(os.Stdout, "LEAD: ", log.LstdFlags), leadHub)
	analyticsController := controller.NewAnalyticsController(db, log.New(os.Stdout, "ANALYTICS: ", log.LstdFlags))

	// Dashboard API, always protected
	api := app.Group("/api/v1", middleware.Protected(), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// White-label configuration
	branding := api.Group("/branding")
	branding.Get("/", brandingController.GetBranding)
	branding.Put("/", brandingController.UpdateBranding)

	// Custom domains
	domains := api.Group("/domains")
	domains.Get("/", domainController.ListDomains)
	domains.Post("/", domainController.AddDomain)
	domains.Post("/:id/verify", domainController.VerifyDomain)

	// Lead pipeline
	leads := api.Group("/leads")
	leads.Get("/", leadController.GetLeads)
	leads.Get("/:id", leadController.GetLead)
	leads.Put("/:id", leadController.UpdateLead)

	// Analytics
	api.Get("/analytics", analyticsController.GetAnalytics)
	api.Get("/activity", analyticsController.GetActivityLog)

	// WebSocket live lead feed for the dashboard
	app.Get("/ws/leads", middleware.Protected(), websocket.New(func(c *websocket.Conn) {
		customerID, ok := c.Locals("customerID").(uint)
		if !ok {
			c.Close()
			return
		}
		leadHub.HandleLeadFeedWS(customerID)(c)
	}))

	// Public lead capture from tenant sites, rate limited per IP.
	// The limiter stays on the route so GET /api/public/branding is not throttled.
	public := app.Group("/api/public")
	public.Post("/leads", middleware.LeadRateLimiter(), leadController.CapturePublicLead)

	log.Println("API routes initialized successfully")
}

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	controller.InitStripe()
	controller.InitGoogleOAuth()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Checkout and provisioning webhook
	app.Post("/checkout/session", controller.CreateCheckoutSession)
	app.Post("/webhooks/stripe", controller.HandleStripeWebhook)

	SetupAuthRoutes(app, db)
	SetupAPIRoutes(app, db)

	// White-label presentation surface
	pagesController := controller.NewPagesController(log.New(os.Stdout, "PAGES: ", log.LstdFlags))
	app.Get("/api/public/branding", pagesController.PublicBranding)
	app.Get("/", pagesController.Landing)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}
