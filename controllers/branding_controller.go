package controller

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/iSuccessHUB/assetshield-app-sub000/models"
	"github.com/iSuccessHUB/assetshield-app-sub000/utils"
)

type BrandingController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewBrandingController(db *gorm.DB, logger *log.Logger) *BrandingController {
	return &BrandingController{
		DB:     db,
		Logger: logger,
	}
}

// BrandingPatch is a sparse update: only non-nil fields are written, the rest
// are left untouched.
type BrandingPatch struct {
	PrimaryColor       *string `json:"primary_color"`
	SecondaryColor     *string `json:"secondary_color"`
	AccentColor        *string `json:"accent_color"`
	HeroTitle          *string `json:"hero_title"`
	HeroSubtitle       *string `json:"hero_subtitle"`
	AboutContent       *string `json:"about_content"`
	ServicesContent    *string `json:"services_content"`
	LogoURL            *string `json:"logo_url"`
	NotificationEmails *string `json:"notification_emails"`
}

// Columns maps the patch onto parameterized update columns.
func (p *BrandingPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.PrimaryColor != nil {
		cols["primary_color"] = *p.PrimaryColor
	}
	if p.SecondaryColor != nil {
		cols["secondary_color"] = *p.SecondaryColor
	}
	if p.AccentColor != nil {
		cols["accent_color"] = *p.AccentColor
	}
	if p.HeroTitle != nil {
		cols["hero_title"] = *p.HeroTitle
	}
	if p.HeroSubtitle != nil {
		cols["hero_subtitle"] = *p.HeroSubtitle
	}
	if p.AboutContent != nil {
		cols["about_content"] = *p.AboutContent
	}
	if p.ServicesContent != nil {
		cols["services_content"] = *p.ServicesContent
	}
	if p.LogoURL != nil {
		cols["logo_url"] = *p.LogoURL
	}
	if p.NotificationEmails != nil {
		cols["notification_emails"] = *p.NotificationEmails
	}
	return cols
}

// GetBranding returns the tenant's white-label configuration.
func (bc *BrandingController) GetBranding(c *fiber.Ctx) error {
	customer := c.Locals("customer").(*models.Customer)

	var wlc models.WhiteLabelConfig
	if err := bc.DB.Where("customer_id = ?", customer.ID).First(&wlc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Branding config not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch branding", err)
	}

	return c.JSON(utils.SuccessResponse(wlc))
}

// UpdateBranding applies a sparse patch to the tenant's branding. Absent
// fields are never written.
func (bc *BrandingController) UpdateBranding(c *fiber.Ctx) error {
	customer := c.Locals("customer").(*models.Customer)

	var patch BrandingPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	cols := patch.Columns()
	if len(cols) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No fields to update", nil)
	}

	result := bc.DB.Model(&models.WhiteLabelConfig{}).
		Where("customer_id = ?", customer.ID).
		Updates(cols)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update branding", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Branding config not found", nil)
	}

	details, _ := json.Marshal(fiber.Map{"fields": len(cols)})
	bc.DB.Create(&models.ActivityLog{
		CustomerID: customer.ID,
		Action:     "branding_updated",
		Details:    string(details),
	})

	var wlc models.WhiteLabelConfig
	if err := bc.DB.Where("customer_id = ?", customer.ID).First(&wlc).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch branding", err)
	}

	return c.JSON(utils.SuccessResponse(wlc))
}
