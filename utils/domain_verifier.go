package utils

import (
	"fmt"
	"net"
	"strings"

	"github.com/google/uuid"
	"github.com/likexian/whois"
	"github.com/sirupsen/logrus"
)

// VerificationRecordName is the TXT record a firm must publish on its domain.
const verificationRecordPrefix = "assetshield-verify="

// DomainVerifier checks domain ownership via a DNS TXT challenge. The lookup
// functions are injectable for tests; the zero values use real DNS and whois.
type DomainVerifier struct {
	LookupTXT func(domain string) ([]string, error)
	Whois     func(domain string) (string, error)
}

func NewDomainVerifier() *DomainVerifier {
	return &DomainVerifier{
		LookupTXT: net.LookupTXT,
		Whois: func(domain string) (string, error) {
			return whois.Whois(domain)
		},
	}
}

// NewVerificationToken generates the secret half of the TXT challenge.
func NewVerificationToken() string {
	return uuid.NewString()
}

// VerificationRecord is the full TXT value the firm must publish.
func VerificationRecord(token string) string {
	return verificationRecordPrefix + token
}

// Verify checks whether the domain publishes the expected TXT record. It also
// captures whois output for the audit trail; whois failures are non-fatal.
func (v *DomainVerifier) Verify(domain, token string) (bool, string, error) {
	records, err := v.LookupTXT(domain)
	if err != nil {
		return false, "", fmt.Errorf("TXT lookup for %s failed: %w", domain, err)
	}

	expected := VerificationRecord(token)
	found := false
	for _, record := range records {
		if strings.TrimSpace(record) == expected {
			found = true
			break
		}
	}
	if !found {
		return false, "", nil
	}

	var whoisInfo string
	if v.Whois != nil {
		whoisInfo, err = v.Whois(domain)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"domain": domain,
				"error":  err.Error(),
			}).Warn("whois lookup failed after TXT verification")
			whoisInfo = ""
		}
	}

	return true, whoisInfo, nil
}
