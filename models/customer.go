package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription tiers
const (
	TierStarter      = "starter"
	TierProfessional = "professional"
	TierEnterprise   = "enterprise"
)

// Customer account statuses
const (
	StatusTrial     = "trial"
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

// Customer represents a paying law-firm tenant. Customers are never
// hard-deleted; their status transitions to cancelled instead.
type Customer struct {
	gorm.Model

	// Firm identity
	FirmName   string `gorm:"not null" json:"firm_name"`
	LawyerName string `gorm:"not null" json:"lawyer_name"`
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	Phone      string `json:"phone"`

	// Authentication
	PasswordHash string  `gorm:"not null" json:"-"`
	GoogleID     *string `gorm:"uniqueIndex" json:"google_id,omitempty"`

	// Subscription
	Tier        string     `gorm:"not null;default:'starter'" json:"tier"` // starter, professional, enterprise
	Status      string     `gorm:"not null;default:'trial'" json:"status"` // trial, active, cancelled
	TrialEndsAt *time.Time `json:"trial_ends_at"`

	// Stripe integration
	StripeCustomerID     *string `gorm:"index" json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID *string `json:"stripe_subscription_id,omitempty"`
	SetupFeeCents        int     `json:"setup_fee_cents"`
	MonthlyFeeCents      int     `json:"monthly_fee_cents"`

	// Generated integration key, prefix "ask_"
	APIKey string `gorm:"uniqueIndex;not null" json:"api_key"`

	// Relations
	WhiteLabelConfig  *WhiteLabelConfig  `gorm:"foreignKey:CustomerID" json:"white_label_config,omitempty"`
	Domains           []CustomerDomain   `gorm:"foreignKey:CustomerID" json:"domains,omitempty"`
	Offices           []Office           `gorm:"foreignKey:CustomerID" json:"offices,omitempty"`
	DocumentTemplates []DocumentTemplate `gorm:"foreignKey:CustomerID" json:"document_templates,omitempty"`
	Leads             []ClientLead       `gorm:"foreignKey:CustomerID" json:"leads,omitempty"`
	ActivityLogs      []ActivityLog      `gorm:"foreignKey:CustomerID" json:"activity_logs,omitempty"`
}

// TrialExpired reports whether a trial customer's trial window has lapsed.
func (c *Customer) TrialExpired() bool {
	return c.Status == StatusTrial && c.TrialEndsAt != nil && time.Now().After(*c.TrialEndsAt)
}

// WhiteLabelConfig holds a tenant's branding. Exactly one row per customer,
// created with tier defaults at provisioning time.
type WhiteLabelConfig struct {
	gorm.Model
	CustomerID uint `gorm:"not null;uniqueIndex" json:"customer_id"`

	// Color tokens
	PrimaryColor   string `gorm:"default:'#1a365d'" json:"primary_color"`
	SecondaryColor string `gorm:"default:'#2d3748'" json:"secondary_color"`
	AccentColor    string `gorm:"default:'#d69e2e'" json:"accent_color"`

	// Textual branding
	HeroTitle       string `json:"hero_title"`
	HeroSubtitle    string `json:"hero_subtitle"`
	AboutContent    string `gorm:"type:text" json:"about_content"`
	ServicesContent string `gorm:"type:text" json:"services_content"`
	LogoURL         string `json:"logo_url"`

	// Comma-separated feature names enabled for this tenant
	FeaturesEnabled string `gorm:"type:text" json:"features_enabled"`

	// Comma-separated addresses notified on new leads
	NotificationEmails string `json:"notification_emails"`

	// Relations
	Customer Customer `json:"-"`
}

// Domain verification statuses
const (
	DomainPending  = "pending"
	DomainVerified = "verified"
	DomainFailed   = "failed"
)

// CustomerDomain maps a custom hostname to a tenant. The domain string is
// globally unique; at most one primary domain per customer.
type CustomerDomain struct {
	gorm.Model
	CustomerID uint `gorm:"not null;index" json:"customer_id"`

	Domain    string `gorm:"uniqueIndex;not null" json:"domain"`
	IsPrimary bool   `gorm:"default:false" json:"is_primary"`

	// DNS TXT challenge state
	VerificationStatus string     `gorm:"default:'pending'" json:"verification_status"` // pending, verified, failed
	VerificationToken  string     `gorm:"not null" json:"verification_token"`
	VerifiedAt         *time.Time `json:"verified_at"`
	LastVerifyError    *string    `json:"last_verify_error,omitempty"`
	WhoisInfo          string     `gorm:"type:text" json:"-"`

	// Relations
	Customer Customer `json:"-"`
}

// Office represents a physical firm location. A headquarters office is
// created during provisioning.
type Office struct {
	gorm.Model
	CustomerID uint `gorm:"not null;index" json:"customer_id"`

	Name          string `gorm:"not null" json:"name"`
	AddressLine   string `json:"address_line"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
	Phone         string `json:"phone"`
	IsHeadquarter bool   `gorm:"default:false" json:"is_headquarter"`

	// Relations
	Customer Customer `json:"-"`
}

// DocumentTemplate is a client-facing engagement document owned by a tenant.
type DocumentTemplate struct {
	gorm.Model
	CustomerID uint `gorm:"not null;index" json:"customer_id"`

	Name     string `gorm:"not null" json:"name"`
	Category string `json:"category"`
	Content  string `gorm:"type:text" json:"content"`

	// Relations
	Customer Customer `json:"-"`
}

// ActivityLog is an append-only audit trail keyed by customer.
type ActivityLog struct {
	gorm.Model
	CustomerID uint `gorm:"not null;index" json:"customer_id"`

	Action  string `gorm:"not null" json:"action"`
	Details string `gorm:"type:text" json:"details"` // JSON blob

	// Relations
	Customer Customer `json:"-"`
}
