package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/iSuccessHUB/assetshield-app-sub000/config"
)

// ConstructStripeEvent securely constructs and verifies a Stripe webhook event
func ConstructStripeEvent(c *fiber.Ctx) (stripe.Event, error) {
	payload := c.Body()
	if len(payload) == 0 {
		return stripe.Event{}, fiber.NewError(fiber.StatusBadRequest, "Empty request body")
	}

	// Get and validate the Stripe-Signature header
	signature := c.Get("Stripe-Signature")
	if signature == "" {
		return stripe.Event{}, fiber.NewError(fiber.StatusBadRequest, "Missing Stripe-Signature header")
	}

	// Verify the webhook signature with tolerance for clock drift
	event, err := webhook.ConstructEventWithTolerance(
		payload,
		signature,
		config.AppConfig.StripeWebhookSecret,
		5*time.Minute,
	)
	if err != nil {
		return stripe.Event{}, fiber.NewError(fiber.StatusBadRequest, "Invalid webhook signature")
	}

	return event, nil
}

// ProvisioningMetadata is the metadata contract the checkout flow attaches to
// the Stripe session; the webhook parses it back to drive provisioning.
type ProvisioningMetadata struct {
	Tier        string
	FirmName    string
	LawyerName  string
	LawyerEmail string
	LawyerPhone string
	SetupFee    int
	MonthlyFee  int
}

// ParseProvisioningMetadata extracts the tenant identity from Stripe event
// metadata. Tier, firm name and owner email are required.
func ParseProvisioningMetadata(metadata map[string]string) (*ProvisioningMetadata, error) {
	m := &ProvisioningMetadata{
		Tier:        metadata["tier"],
		FirmName:    metadata["firmName"],
		LawyerName:  metadata["lawyerName"],
		LawyerEmail: metadata["lawyerEmail"],
		LawyerPhone: metadata["lawyerPhone"],
	}
	if m.Tier == "" || m.FirmName == "" || m.LawyerEmail == "" {
		return nil, fmt.Errorf("incomplete provisioning metadata: tier=%q firmName=%q lawyerEmail=%q",
			m.Tier, m.FirmName, m.LawyerEmail)
	}

	// Fees are advisory; ignore unparseable values
	if v, err := strconv.Atoi(metadata["setupFee"]); err == nil {
		m.SetupFee = v
	}
	if v, err := strconv.Atoi(metadata["monthlyFee"]); err == nil {
		m.MonthlyFee = v
	}

	return m, nil
}
