package controller

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/iSuccessHUB/assetshield-app-sub000/models"
)

func seedLeadAt(t *testing.T, db *gorm.DB, customerID uint, email string, createdAt time.Time) {
	t.Helper()
	lead := models.ClientLead{
		Model:      gorm.Model{CreatedAt: createdAt},
		CustomerID: customerID,
		Name:       "Lead",
		Email:      email,
		RiskLevel:  models.RiskMedium,
		Status:     models.LeadNew,
	}
	require.NoError(t, db.Create(&lead).Error)
}

func TestGetAnalyticsRollingWindow(t *testing.T) {
	db := newTestDB(t)
	customer := newTestCustomer(t, db, "jane@smithlaw.com", "ask_analytics")

	now := time.Now()
	seedLeadAt(t, db, customer.ID, "recent1@example.com", now.AddDate(0, 0, -2))
	seedLeadAt(t, db, customer.ID, "recent2@example.com", now.AddDate(0, 0, -10))
	seedLeadAt(t, db, customer.ID, "stale@example.com", now.AddDate(0, 0, -40))

	ac := NewAnalyticsController(db, testLogger("ANALYTICS: "))
	app := newAuthedApp(customer)
	app.Get("/analytics", ac.GetAnalytics)

	resp, err := app.Test(httptest.NewRequest("GET", "/analytics?days=30", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body struct {
		Data struct {
			PeriodDays int   `json:"period_days"`
			TotalLeads int64 `json:"total_leads"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, 30, body.Data.PeriodDays)
	assert.EqualValues(t, 2, body.Data.TotalLeads, "lead outside the window must not be counted")

	// Wider window picks the old lead back up
	resp, err = app.Test(httptest.NewRequest("GET", "/analytics?days=60", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	raw, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.EqualValues(t, 3, body.Data.TotalLeads)
}
