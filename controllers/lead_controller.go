package controller

import (
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/iSuccessHUB/assetshield-app-sub000/middleware"
	"github.com/iSuccessHUB/assetshield-app-sub000/models"
	"github.com/iSuccessHUB/assetshield-app-sub000/utils"
)

type LeadController struct {
	DB     *gorm.DB
	Logger *log.Logger
	Hub    *LeadHub
}

func NewLeadController(db *gorm.DB, logger *log.Logger, hub *LeadHub) *LeadController {
	return &LeadController{
		DB:     db,
		Logger: logger,
		Hub:    hub,
	}
}

type CaptureLeadRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,max=30"`

	AssessmentData      json.RawMessage `json:"assessment_data"`
	RiskScore           int             `json:"risk_score" validate:"min=0,max=100"`
	RiskLevel           string          `json:"risk_level" validate:"omitempty,oneof=low medium high"`
	AssessmentCompleted bool            `json:"assessment_completed"`

	UTMSource   string `json:"utm_source" validate:"omitempty,max=200"`
	UTMMedium   string `json:"utm_medium" validate:"omitempty,max=200"`
	UTMCampaign string `json:"utm_campaign" validate:"omitempty,max=200"`
}

// CapturePublicLead records an assessment submission from a tenant's public
// site. The tenant comes from the resolved branding context, or from an
// explicit X-API-Key header for embedded integrations.
func (lc *LeadController) CapturePublicLead(c *fiber.Ctx) error {
	customerID, err := lc.resolveTenant(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No law firm associated with this site", nil)
	}

	var req CaptureLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}
	if err := checkmail.ValidateFormat(req.Email); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid email address", nil)
	}

	lead := models.ClientLead{
		CustomerID:          customerID,
		Name:                req.Name,
		Email:               strings.ToLower(req.Email),
		Phone:               req.Phone,
		AssessmentData:      string(req.AssessmentData),
		RiskScore:           req.RiskScore,
		RiskLevel:           req.RiskLevel,
		AssessmentCompleted: req.AssessmentCompleted,
		UTMSource:           req.UTMSource,
		UTMMedium:           req.UTMMedium,
		UTMCampaign:         req.UTMCampaign,
		Referrer:            c.Get("Referer"),
		Status:              models.LeadNew,
	}

	if err := lc.DB.Create(&lead).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record lead", err)
	}

	details, _ := json.Marshal(fiber.Map{"lead_id": lead.ID, "risk_level": lead.RiskLevel})
	lc.DB.Create(&models.ActivityLog{
		CustomerID: customerID,
		Action:     "lead_captured",
		Details:    string(details),
	})

	lc.notifyFirm(customerID, &lead)
	if lc.Hub != nil {
		lc.Hub.Broadcast(&lead)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(fiber.Map{
		"lead_id": lead.ID,
	}))
}

// resolveTenant picks the customer for a public submission: branding context
// first, explicit API key second.
func (lc *LeadController) resolveTenant(c *fiber.Ctx) (uint, error) {
	if branding := middleware.GetBranding(c); branding != nil {
		return branding.CustomerID, nil
	}

	apiKey := c.Get("X-API-Key")
	if apiKey == "" {
		return 0, gorm.ErrRecordNotFound
	}

	var customer models.Customer
	if err := lc.DB.Where("api_key = ?", apiKey).First(&customer).Error; err != nil {
		return 0, err
	}
	return customer.ID, nil
}

// notifyFirm sends the lead notification email to the firm's configured
// addresses. Best effort only.
func (lc *LeadController) notifyFirm(customerID uint, lead *models.ClientLead) {
	var wlc models.WhiteLabelConfig
	if err := lc.DB.Where("customer_id = ?", customerID).First(&wlc).Error; err != nil {
		return
	}
	if wlc.NotificationEmails == "" {
		return
	}

	recipients := strings.Split(wlc.NotificationEmails, ",")
	for i := range recipients {
		recipients[i] = strings.TrimSpace(recipients[i])
	}

	if err := utils.SendLeadNotificationEmail(recipients, utils.LeadNotificationData{
		LeadName:  lead.Name,
		LeadEmail: lead.Email,
		RiskLevel: lead.RiskLevel,
		RiskScore: lead.RiskScore,
	}); err != nil {
		lc.Logger.Printf("lead notification for customer %d failed: %v", customerID, err)
	}
}

// GetLeads returns a paginated list of the tenant's leads with filters.
func (lc *LeadController) GetLeads(c *fiber.Ctx) error {
	customer := c.Locals("customer").(*models.Customer)

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit > 100 {
		limit = 100
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := lc.DB.Model(&models.ClientLead{}).Where("customer_id = ?", customer.ID)

	if email := c.Query("email"); email != "" {
		query = query.Where("email LIKE ?", "%"+strings.ToLower(email)+"%")
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if riskLevel := c.Query("risk_level"); riskLevel != "" {
		query = query.Where("risk_level = ?", riskLevel)
	}

	// Count before pagination so offset never leaks into the total
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count leads", err)
	}

	var leads []models.ClientLead
	if err := query.Session(&gorm.Session{}).Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&leads).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch leads", err)
	}

	return c.JSON(utils.PaginatedResponse{
		Data:  leads,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetLead returns a single lead by ID
func (lc *LeadController) GetLead(c *fiber.Ctx) error {
	customer := c.Locals("customer").(*models.Customer)
	leadID := c.Params("id")

	var lead models.ClientLead
	if err := lc.DB.Where("id = ? AND customer_id = ?", leadID, customer.ID).First(&lead).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch lead", err)
	}

	return c.JSON(utils.SuccessResponse(lead))
}

type UpdateLeadRequest struct {
	Status         *string    `json:"status" validate:"omitempty,oneof=new contacted consultation converted"`
	ConsultationAt *time.Time `json:"consultation_at"`
}

// UpdateLead moves a lead through the follow-up pipeline. Leads are never
// deleted.
func (lc *LeadController) UpdateLead(c *fiber.Ctx) error {
	customer := c.Locals("customer").(*models.Customer)
	leadID := c.Params("id")

	var req UpdateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var lead models.ClientLead
	if err := lc.DB.Where("id = ? AND customer_id = ?", leadID, customer.ID).First(&lead).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch lead", err)
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.ConsultationAt != nil {
		updates["consultation_at"] = req.ConsultationAt
	}
	if len(updates) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No fields to update", nil)
	}

	if err := lc.DB.Model(&lead).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update lead", err)
	}

	details, _ := json.Marshal(fiber.Map{"lead_id": lead.ID, "updates": updates})
	lc.DB.Create(&models.ActivityLog{
		CustomerID: customer.ID,
		Action:     "lead_updated",
		Details:    string(details),
	})

	return c.JSON(utils.SuccessResponse(lead))
}
