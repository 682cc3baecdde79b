package models

import (
	"fmt"
	"strings"
)

// tierFeatures is the static tier -> feature-list table applied when a
// tenant's WhiteLabelConfig is created. There is no runtime customization.
var tierFeatures = map[string][]string{
	TierStarter: {
		"risk_assessment",
		"lead_capture",
		"basic_branding",
	},
	TierProfessional: {
		"risk_assessment",
		"lead_capture",
		"basic_branding",
		"custom_domain",
		"document_templates",
		"analytics",
	},
	TierEnterprise: {
		"risk_assessment",
		"lead_capture",
		"basic_branding",
		"custom_domain",
		"document_templates",
		"analytics",
		"multi_office",
		"api_access",
		"priority_support",
	},
}

// FeaturesForTier returns the feature list for a tier, defaulting to the
// starter set for unknown tiers.
func FeaturesForTier(tier string) []string {
	features, ok := tierFeatures[tier]
	if !ok {
		features = tierFeatures[TierStarter]
	}
	out := make([]string, len(features))
	copy(out, features)
	return out
}

// EncodeFeatures serializes a feature list into the stored form.
func EncodeFeatures(features []string) string {
	return strings.Join(features, ",")
}

// DecodeFeatures parses the stored feature list.
func DecodeFeatures(stored string) []string {
	if stored == "" {
		return nil
	}
	return strings.Split(stored, ",")
}

// HasFeature reports whether a config has a feature enabled.
func (w *WhiteLabelConfig) HasFeature(name string) bool {
	for _, f := range DecodeFeatures(w.FeaturesEnabled) {
		if f == name {
			return true
		}
	}
	return false
}

// DefaultWhiteLabelConfig builds the tier-appropriate branding defaults for a
// newly provisioned firm.
func DefaultWhiteLabelConfig(customerID uint, firmName, tier string) WhiteLabelConfig {
	return WhiteLabelConfig{
		CustomerID:      customerID,
		PrimaryColor:    "#1a365d",
		SecondaryColor:  "#2d3748",
		AccentColor:     "#d69e2e",
		HeroTitle:       fmt.Sprintf("Protect Your Assets with %s", firmName),
		HeroSubtitle:    "Take our free risk assessment and discover how exposed your wealth really is.",
		FeaturesEnabled: EncodeFeatures(FeaturesForTier(tier)),
	}
}

// DefaultDocumentTemplates returns the three fixed engagement documents every
// new tenant receives, regardless of tier.
func DefaultDocumentTemplates(customerID uint) []DocumentTemplate {
	return []DocumentTemplate{
		{
			CustomerID: customerID,
			Name:       "Asset Protection Engagement Letter",
			Category:   "engagement",
			Content:    "This letter confirms the engagement of {{firm_name}} to provide asset protection planning services to {{client_name}}.",
		},
		{
			CustomerID: customerID,
			Name:       "Risk Assessment Summary",
			Category:   "assessment",
			Content:    "Prepared by {{firm_name}} for {{client_name}}. Overall risk level: {{risk_level}} ({{risk_score}}/100).",
		},
		{
			CustomerID: customerID,
			Name:       "Consultation Follow-Up",
			Category:   "follow_up",
			Content:    "Thank you for meeting with {{firm_name}}. Based on our consultation, we recommend the following next steps.",
		},
	}
}
