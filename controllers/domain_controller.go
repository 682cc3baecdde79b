package controller

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/iSuccessHUB/assetshield-app-sub000/models"
	"github.com/iSuccessHUB/assetshield-app-sub000/utils"
)

type DomainController struct {
	DB       *gorm.DB
	Logger   *log.Logger
	Verifier *utils.DomainVerifier
}

func NewDomainController(db *gorm.DB, logger *log.Logger) *DomainController {
	return &DomainController{
		DB:       db,
		Logger:   logger,
		Verifier: utils.NewDomainVerifier(),
	}
}

type AddDomainRequest struct {
	Domain    string `json:"domain" validate:"required,fqdn"`
	IsPrimary bool   `json:"is_primary"`
}

// ListDomains returns the tenant's domains with their verification state.
func (dc *DomainController) ListDomains(c *fiber.Ctx) error {
	customer := c.Locals("customer").(*models.Customer)

	var domains []models.CustomerDomain
	if err := dc.DB.Where("customer_id = ?", customer.ID).Order("created_at").Find(&domains).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch domains", err)
	}

	return c.JSON(utils.SuccessResponse(domains))
}

// AddDomain registers a custom domain for the tenant. When the new domain is
// primary, unsetting the previous primary and inserting happen in one
// transaction.
func (dc *DomainController) AddDomain(c *fiber.Ctx) error {
	customer := c.Locals("customer").(*models.Customer)

	var req AddDomainRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	domainName := strings.ToLower(strings.TrimSpace(req.Domain))

	var existing models.CustomerDomain
	if err := dc.DB.Where("domain = ?", domainName).First(&existing).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Domain is already registered", nil)
	}

	domain := models.CustomerDomain{
		CustomerID:         customer.ID,
		Domain:             domainName,
		IsPrimary:          req.IsPrimary,
		VerificationStatus: models.DomainPending,
		VerificationToken:  utils.NewVerificationToken(),
	}

	err := dc.DB.Transaction(func(tx *gorm.DB) error {
		if req.IsPrimary {
			if err := tx.Model(&models.CustomerDomain{}).
				Where("customer_id = ? AND is_primary = ?", customer.ID, true).
				Update("is_primary", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&domain).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to add domain", err)
	}

	details, _ := json.Marshal(fiber.Map{"domain": domainName, "is_primary": req.IsPrimary})
	dc.DB.Create(&models.ActivityLog{
		CustomerID: customer.ID,
		Action:     "domain_added",
		Details:    string(details),
	})

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(fiber.Map{
		"domain": domain,
		"verification_record": fiber.Map{
			"type":  "TXT",
			"host":  domainName,
			"value": utils.VerificationRecord(domain.VerificationToken),
		},
	}))
}

// VerifyDomain checks the DNS TXT challenge for a pending domain. Verifying
// an already-verified domain is a no-op that reports verified again.
func (dc *DomainController) VerifyDomain(c *fiber.Ctx) error {
	customer := c.Locals("customer").(*models.Customer)
	domainID := c.Params("id")

	var domain models.CustomerDomain
	if err := dc.DB.Where("id = ? AND customer_id = ?", domainID, customer.ID).First(&domain).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Domain not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch domain", err)
	}

	if domain.VerificationStatus == models.DomainVerified {
		return c.JSON(utils.SuccessResponse(fiber.Map{
			"verified": true,
			"domain":   domain,
		}))
	}

	verified, whoisInfo, err := dc.Verifier.Verify(domain.Domain, domain.VerificationToken)
	if err != nil || !verified {
		updates := map[string]interface{}{
			"verification_status": models.DomainFailed,
		}
		if err != nil {
			updates["last_verify_error"] = err.Error()
		} else {
			updates["last_verify_error"] = "TXT record not found"
		}
		dc.DB.Model(&domain).Updates(updates)

		return c.JSON(utils.SuccessResponse(fiber.Map{
			"verified": false,
			"expected_record": fiber.Map{
				"type":  "TXT",
				"host":  domain.Domain,
				"value": utils.VerificationRecord(domain.VerificationToken),
			},
		}))
	}

	now := time.Now()
	if err := dc.DB.Model(&domain).Updates(map[string]interface{}{
		"verification_status": models.DomainVerified,
		"verified_at":         &now,
		"last_verify_error":   nil,
		"whois_info":          whoisInfo,
	}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update domain", err)
	}

	details, _ := json.Marshal(fiber.Map{"domain": domain.Domain})
	dc.DB.Create(&models.ActivityLog{
		CustomerID: customer.ID,
		Action:     "domain_verified",
		Details:    string(details),
	})

	domain.VerificationStatus = models.DomainVerified
	domain.VerifiedAt = &now
	return c.JSON(utils.SuccessResponse(fiber.Map{
		"verified": true,
		"domain":   domain,
	}))
}
