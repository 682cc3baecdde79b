package controller

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/iSuccessHUB/assetshield-app-sub000/models"
	"github.com/iSuccessHUB/assetshield-app-sub000/utils"
)

type AnalyticsController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewAnalyticsController(db *gorm.DB, logger *log.Logger) *AnalyticsController {
	return &AnalyticsController{
		DB:     db,
		Logger: logger,
	}
}

// GetAnalytics aggregates lead metrics over a rolling window. Counts are
// computed on demand from the leads table, nothing is precomputed.
func (ac *AnalyticsController) GetAnalytics(c *fiber.Ctx) error {
	customer := c.Locals("customer").(*models.Customer)

	days, _ := strconv.Atoi(c.Query("days", "30"))
	if days < 1 {
		days = 1
	}
	if days > 365 {
		days = 365
	}
	since := time.Now().AddDate(0, 0, -days)

	base := ac.DB.Model(&models.ClientLead{}).
		Where("customer_id = ? AND created_at >= ?", customer.ID, since)

	var totalLeads int64
	if err := base.Session(&gorm.Session{}).Count(&totalLeads).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute analytics", err)
	}

	var completedAssessments int64
	base.Session(&gorm.Session{}).Where("assessment_completed = ?", true).Count(&completedAssessments)

	var scheduledConsultations int64
	base.Session(&gorm.Session{}).Where("consultation_at IS NOT NULL").Count(&scheduledConsultations)

	var converted int64
	base.Session(&gorm.Session{}).Where("status = ?", models.LeadConverted).Count(&converted)

	riskDistribution := fiber.Map{}
	for _, level := range []string{models.RiskLow, models.RiskMedium, models.RiskHigh} {
		var count int64
		base.Session(&gorm.Session{}).Where("risk_level = ?", level).Count(&count)
		riskDistribution[level] = count
	}

	conversionRate := 0.0
	if totalLeads > 0 {
		conversionRate = float64(converted) / float64(totalLeads) * 100
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"period_days":             days,
		"total_leads":             totalLeads,
		"completed_assessments":   completedAssessments,
		"scheduled_consultations": scheduledConsultations,
		"converted_leads":         converted,
		"conversion_rate":         conversionRate,
		"risk_distribution":       riskDistribution,
	}))
}

// GetActivityLog returns the tenant's recent audit trail.
func (ac *AnalyticsController) GetActivityLog(c *fiber.Ctx) error {
	customer := c.Locals("customer").(*models.Customer)

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit > 200 {
		limit = 200
	}
	if limit < 1 {
		limit = 1
	}

	var entries []models.ActivityLog
	if err := ac.DB.Where("customer_id = ?", customer.ID).
		Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch activity log", err)
	}

	return c.JSON(utils.SuccessResponse(entries))
}
