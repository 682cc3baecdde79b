package controller

import (
	"encoding/json"
	"log"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"

	"github.com/iSuccessHUB/assetshield-app-sub000/config"
	"github.com/iSuccessHUB/assetshield-app-sub000/models"
	"github.com/iSuccessHUB/assetshield-app-sub000/utils"
)

func InitStripe() {
	stripe.Key = config.AppConfig.StripeSecretKey
}

// tierPricing is the static price table in cents per tier.
var tierPricing = map[string]struct {
	SetupFee   int64
	MonthlyFee int64
}{
	models.TierStarter:      {SetupFee: 50000, MonthlyFee: 9900},
	models.TierProfessional: {SetupFee: 150000, MonthlyFee: 29900},
	models.TierEnterprise:   {SetupFee: 500000, MonthlyFee: 99900},
}

type CheckoutRequest struct {
	Tier        string `json:"tier" validate:"required,oneof=starter professional enterprise"`
	FirmName    string `json:"firm_name" validate:"required,max=200"`
	LawyerName  string `json:"lawyer_name" validate:"required,max=100"`
	LawyerEmail string `json:"lawyer_email" validate:"required,email"`
	LawyerPhone string `json:"lawyer_phone" validate:"omitempty,max=30"`
	SuccessURL  string `json:"success_url" validate:"required,max=500"`
	CancelURL   string `json:"cancel_url" validate:"required,max=500"`
}

// CreateCheckoutSession starts the Stripe checkout for a new firm. The
// provisioning metadata rides on the session and comes back on the webhook.
func CreateCheckoutSession(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	pricing, ok := tierPricing[req.Tier]
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Unknown tier", nil)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail: stripe.String(req.LawyerEmail),
		SuccessURL:    stripe.String(req.SuccessURL),
		CancelURL:     stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("AssetShield " + req.Tier + " plan"),
					},
					UnitAmount: stripe.Int64(pricing.MonthlyFee),
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval: stripe.String("month"),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			TrialPeriodDays: stripe.Int64(14),
		},
	}
	params.AddMetadata("tier", req.Tier)
	params.AddMetadata("firmName", req.FirmName)
	params.AddMetadata("lawyerName", req.LawyerName)
	params.AddMetadata("lawyerEmail", req.LawyerEmail)
	params.AddMetadata("lawyerPhone", req.LawyerPhone)
	params.AddMetadata("setupFee", strconv.FormatInt(pricing.SetupFee, 10))
	params.AddMetadata("monthlyFee", strconv.FormatInt(pricing.MonthlyFee, 10))

	s, err := session.New(params)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create checkout session", err)
	}

	return c.JSON(fiber.Map{
		"session_id":   s.ID,
		"checkout_url": s.URL,
	})
}

// HandleStripeWebhook consumes verified payment events and drives the tenant
// lifecycle: checkout completion provisions, subscription deletion cancels,
// a paid invoice activates a trial account.
func HandleStripeWebhook(c *fiber.Ctx) error {
	event, err := utils.ConstructStripeEvent(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook payload",
		})
	}

	logger := log.New(os.Stdout, "PROVISION: ", log.LstdFlags)

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Error parsing checkout session",
			})
		}
		return handleCheckoutCompleted(c, &sess, logger)

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Error parsing subscription",
			})
		}
		return handleSubscriptionDeleted(c, &sub, logger)

	case "invoice.payment_succeeded":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Error parsing invoice",
			})
		}
		return handleInvoicePaid(c, &invoice, logger)

	default:
		return c.SendStatus(fiber.StatusOK)
	}
}

func handleCheckoutCompleted(c *fiber.Ctx, sess *stripe.CheckoutSession, logger *log.Logger) error {
	meta, err := utils.ParseProvisioningMetadata(sess.Metadata)
	if err != nil {
		logger.Printf("checkout session %s missing provisioning metadata: %v", sess.ID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Incomplete provisioning metadata",
		})
	}

	var stripeCustomerID, stripeSubscriptionID string
	if sess.Customer != nil {
		stripeCustomerID = sess.Customer.ID
	}
	if sess.Subscription != nil {
		stripeSubscriptionID = sess.Subscription.ID
	}

	provisioner := utils.NewProvisioner(config.DB, logger)
	result, err := provisioner.Provision(meta, stripeCustomerID, stripeSubscriptionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Provisioning failed",
		})
	}

	if result.AlreadyExisted {
		logger.Printf("duplicate checkout event for %s ignored", meta.LawyerEmail)
	}

	return c.SendStatus(fiber.StatusOK)
}

func handleSubscriptionDeleted(c *fiber.Ctx, sub *stripe.Subscription, logger *log.Logger) error {
	var customer models.Customer
	if err := config.DB.Where("stripe_subscription_id = ?", sub.ID).First(&customer).Error; err != nil {
		logger.Printf("subscription %s has no customer, ignoring", sub.ID)
		return c.SendStatus(fiber.StatusOK)
	}

	if err := config.DB.Model(&customer).Update("status", models.StatusCancelled).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to cancel account",
		})
	}

	details, _ := json.Marshal(map[string]string{"stripe_subscription_id": sub.ID})
	config.DB.Create(&models.ActivityLog{
		CustomerID: customer.ID,
		Action:     "subscription_cancelled",
		Details:    string(details),
	})

	return c.SendStatus(fiber.StatusOK)
}

func handleInvoicePaid(c *fiber.Ctx, invoice *stripe.Invoice, logger *log.Logger) error {
	if invoice.Customer == nil {
		return c.SendStatus(fiber.StatusOK)
	}

	var customer models.Customer
	if err := config.DB.Where("stripe_customer_id = ?", invoice.Customer.ID).First(&customer).Error; err != nil {
		logger.Printf("invoice customer %s unknown, ignoring", invoice.Customer.ID)
		return c.SendStatus(fiber.StatusOK)
	}

	// First paid invoice after the trial activates the account
	if customer.Status == models.StatusTrial {
		if err := config.DB.Model(&customer).Update("status", models.StatusActive).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to activate account",
			})
		}
	}

	return c.SendStatus(fiber.StatusOK)
}
