package controller

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iSuccessHUB/assetshield-app-sub000/models"
)

func TestAddDomainSecondPrimaryDemotesFirst(t *testing.T) {
	db := newTestDB(t)
	customer := newTestCustomer(t, db, "jane@smithlaw.com", "ask_domains_test")

	dc := NewDomainController(db, testLogger("DOMAIN: "))
	app := newAuthedApp(customer)
	app.Post("/domains", dc.AddDomain)

	for _, name := range []string{"first.smithlaw.com", "second.smithlaw.com"} {
		req := httptest.NewRequest("POST", "/domains",
			strings.NewReader(`{"domain":"`+name+`","is_primary":true}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	}

	var primaries []models.CustomerDomain
	require.NoError(t, db.Where("customer_id = ? AND is_primary = ?", customer.ID, true).
		Find(&primaries).Error)
	require.Len(t, primaries, 1)
	assert.Equal(t, "second.smithlaw.com", primaries[0].Domain)

	var total int64
	db.Model(&models.CustomerDomain{}).Where("customer_id = ?", customer.ID).Count(&total)
	assert.EqualValues(t, 2, total)
}

func TestAddDomainRejectsDuplicate(t *testing.T) {
	db := newTestDB(t)
	customer := newTestCustomer(t, db, "jane@smithlaw.com", "ask_domains_dup")

	dc := NewDomainController(db, testLogger("DOMAIN: "))
	app := newAuthedApp(customer)
	app.Post("/domains", dc.AddDomain)

	body := `{"domain":"portal.smithlaw.com"}`
	req := httptest.NewRequest("POST", "/domains", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	req = httptest.NewRequest("POST", "/domains", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)
}
