package controller

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/iSuccessHUB/assetshield-app-sub000/models"
)

// newTestDB opens an in-memory database scoped to the calling test and runs
// the full schema migration.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.WhiteLabelConfig{},
		&models.CustomerDomain{},
		&models.Office{},
		&models.DocumentTemplate{},
		&models.ClientLead{},
		&models.ActivityLog{},
	))
	return db
}

// newTestCustomer persists a minimal customer row for handler tests.
func newTestCustomer(t *testing.T, db *gorm.DB, email, apiKey string) *models.Customer {
	t.Helper()

	customer := models.Customer{
		FirmName:     "Smith & Associates",
		LawyerName:   "Jane Smith",
		Email:        email,
		PasswordHash: "x",
		Tier:         models.TierStarter,
		Status:       models.StatusTrial,
		APIKey:       apiKey,
	}
	require.NoError(t, db.Create(&customer).Error)
	return &customer
}

// newAuthedApp returns a fiber app whose requests carry the given customer in
// locals, the way the JWT middleware does for dashboard routes.
func newAuthedApp(customer *models.Customer) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("customer", customer)
		c.Locals("customerID", customer.ID)
		return c.Next()
	})
	return app
}

func testLogger(prefix string) *log.Logger {
	return log.New(os.Stdout, prefix, log.LstdFlags)
}
