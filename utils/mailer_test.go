package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcomeTemplate(t *testing.T) {
	body, err := RenderEmailTemplate("welcome", WelcomeEmailData{
		FirmName:     "Smith & Associates",
		LawyerName:   "Jane Smith",
		Tier:         "professional",
		Email:        "jane@smithlaw.com",
		TempPassword: "Xk4mPq92",
		DashboardURL: "https://app.assetshield.app/dashboard",
		TrialEndsAt:  "September 13, 2026",
		Year:         2026,
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Smith &amp; Associates")
	assert.Contains(t, body, "Jane Smith")
	assert.Contains(t, body, "Xk4mPq92")
	assert.Contains(t, body, "https://app.assetshield.app/dashboard")
	assert.Contains(t, body, "September 13, 2026")
	assert.NotContains(t, body, "{{")
}

func TestRenderLeadNotificationTemplate(t *testing.T) {
	body, err := RenderEmailTemplate("lead_notification", LeadNotificationData{
		LeadName:  "Bob Client",
		LeadEmail: "bob@example.com",
		RiskLevel: "high",
		RiskScore: 87,
		Year:      2026,
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Bob Client")
	assert.Contains(t, body, "bob@example.com")
	assert.Contains(t, body, "high")
	assert.Contains(t, body, "87/100")
	assert.NotContains(t, body, "{{")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := RenderEmailTemplate("does_not_exist", nil)
	assert.Error(t, err)
}
