package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrialExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name     string
		customer Customer
		want     bool
	}{
		{"trial still running", Customer{Status: StatusTrial, TrialEndsAt: &future}, false},
		{"trial ended", Customer{Status: StatusTrial, TrialEndsAt: &past}, true},
		{"active subscription past trial date", Customer{Status: StatusActive, TrialEndsAt: &past}, false},
		{"cancelled", Customer{Status: StatusCancelled, TrialEndsAt: &past}, false},
		{"trial with no end date", Customer{Status: StatusTrial}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.customer.TrialExpired())
		})
	}
}
