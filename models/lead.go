package models

import (
	"time"

	"gorm.io/gorm"
)

// Lead statuses
const (
	LeadNew          = "new"
	LeadContacted    = "contacted"
	LeadConsultation = "consultation"
	LeadConverted    = "converted"
)

// Risk levels produced by the assessment wizard
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// ClientLead is a risk-assessment submission captured against a tenant.
// Leads are never deleted; dashboard updates move them through statuses.
type ClientLead struct {
	gorm.Model
	CustomerID uint `gorm:"not null;index" json:"customer_id"`

	// Contact info
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"not null;index" json:"email"`
	Phone string `json:"phone"`

	// Assessment outcome; answers arrive serialized from the wizard
	AssessmentData      string `gorm:"type:text" json:"assessment_data"`
	RiskScore           int    `json:"risk_score"`
	RiskLevel           string `json:"risk_level"` // low, medium, high
	AssessmentCompleted bool   `gorm:"default:false" json:"assessment_completed"`

	// Acquisition metadata
	UTMSource   string `json:"utm_source"`
	UTMMedium   string `json:"utm_medium"`
	UTMCampaign string `json:"utm_campaign"`
	Referrer    string `json:"referrer"`

	Status         string     `gorm:"default:'new'" json:"status"` // new, contacted, consultation, converted
	ConsultationAt *time.Time `json:"consultation_at"`

	// Relations
	Customer Customer `json:"-"`
}
