package utils

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/badoux/checkmail"
	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/iSuccessHUB/assetshield-app-sub000/config"
	"github.com/iSuccessHUB/assetshield-app-sub000/models"
)

// TrialDuration is the trial window granted to every new tenant.
const TrialDuration = 14 * 24 * time.Hour

// Provisioner turns a confirmed payment into a usable tenant: customer row,
// branding defaults, headquarters office, document templates and an audit
// entry, all inside one transaction. The welcome email is sent after commit
// and is best-effort.
type Provisioner struct {
	DB     *gorm.DB
	Logger *log.Logger

	// SendWelcome is injectable for tests; nil means SendWelcomeEmail.
	SendWelcome func(WelcomeEmailData) error
}

func NewProvisioner(db *gorm.DB, logger *log.Logger) *Provisioner {
	return &Provisioner{
		DB:          db,
		Logger:      logger,
		SendWelcome: SendWelcomeEmail,
	}
}

// ProvisionResult reports what Provision created.
type ProvisionResult struct {
	Customer       *models.Customer
	AlreadyExisted bool
}

// Provision creates the tenant described by the checkout metadata. Calling it
// again for an email that already has a customer is a no-op, which makes
// webhook redelivery safe.
func (p *Provisioner) Provision(meta *ProvisioningMetadata, stripeCustomerID, stripeSubscriptionID string) (*ProvisionResult, error) {
	if err := checkmail.ValidateFormat(meta.LawyerEmail); err != nil {
		return nil, errors.New("invalid owner email in provisioning metadata")
	}

	var existing models.Customer
	if err := p.DB.Where("email = ?", meta.LawyerEmail).First(&existing).Error; err == nil {
		p.Logger.Printf("customer %d already provisioned for %s, skipping", existing.ID, meta.LawyerEmail)
		return &ProvisionResult{Customer: &existing, AlreadyExisted: true}, nil
	}

	tempPassword, err := GenerateTempPassword(12)
	if err != nil {
		return nil, err
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	apiKey, err := GenerateAPIKey()
	if err != nil {
		return nil, err
	}

	trialEndsAt := time.Now().Add(TrialDuration)
	customer := models.Customer{
		FirmName:        meta.FirmName,
		LawyerName:      meta.LawyerName,
		Email:           meta.LawyerEmail,
		Phone:           meta.LawyerPhone,
		PasswordHash:    string(passwordHash),
		Tier:            meta.Tier,
		Status:          models.StatusTrial,
		TrialEndsAt:     &trialEndsAt,
		APIKey:          apiKey,
		SetupFeeCents:   meta.SetupFee,
		MonthlyFeeCents: meta.MonthlyFee,
	}
	if stripeCustomerID != "" {
		customer.StripeCustomerID = &stripeCustomerID
	}
	if stripeSubscriptionID != "" {
		customer.StripeSubscriptionID = &stripeSubscriptionID
	}

	err = p.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&customer).Error; err != nil {
			return err
		}

		wlc := models.DefaultWhiteLabelConfig(customer.ID, customer.FirmName, customer.Tier)
		wlc.NotificationEmails = customer.Email
		if err := tx.Create(&wlc).Error; err != nil {
			return err
		}

		office := models.Office{
			CustomerID:    customer.ID,
			Name:          customer.FirmName + " Headquarters",
			Phone:         customer.Phone,
			IsHeadquarter: true,
		}
		if err := tx.Create(&office).Error; err != nil {
			return err
		}

		templates := models.DefaultDocumentTemplates(customer.ID)
		if err := tx.Create(&templates).Error; err != nil {
			return err
		}

		details, _ := json.Marshal(map[string]interface{}{
			"tier":        customer.Tier,
			"firm_name":   customer.FirmName,
			"lawyer_name": customer.LawyerName,
		})
		activity := models.ActivityLog{
			CustomerID: customer.ID,
			Action:     "account_created",
			Details:    string(details),
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"firm_name":    meta.FirmName,
			"lawyer_email": meta.LawyerEmail,
			"tier":         meta.Tier,
		}).WithError(err).Error("tenant provisioning failed")
		sentry.CaptureException(err)
		return nil, err
	}

	p.Logger.Printf("provisioned customer %d (%s, tier=%s)", customer.ID, customer.FirmName, customer.Tier)

	// Welcome email outside the transaction: a send failure leaves a usable,
	// unnotified tenant rather than undoing the account.
	sendWelcome := p.SendWelcome
	if sendWelcome == nil {
		sendWelcome = SendWelcomeEmail
	}
	if err := sendWelcome(WelcomeEmailData{
		FirmName:     customer.FirmName,
		LawyerName:   customer.LawyerName,
		Tier:         customer.Tier,
		Email:        customer.Email,
		TempPassword: tempPassword,
		DashboardURL: config.AppConfig.DashboardURL,
		TrialEndsAt:  trialEndsAt.Format("January 2, 2006"),
	}); err != nil {
		logrus.WithFields(logrus.Fields{
			"customer_id": customer.ID,
			"email":       customer.Email,
		}).WithError(err).Error("welcome email failed")
		sentry.CaptureException(err)
	}

	return &ProvisionResult{Customer: &customer}, nil
}
