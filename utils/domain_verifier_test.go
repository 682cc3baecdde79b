package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDomainVerifierDefaults(t *testing.T) {
	v := NewDomainVerifier()
	assert.NotNil(t, v.LookupTXT)
	assert.NotNil(t, v.Whois)
}

func TestVerificationRecord(t *testing.T) {
	token := NewVerificationToken()
	record := VerificationRecord(token)

	assert.True(t, strings.HasPrefix(record, "assetshield-verify="))
	assert.Equal(t, "assetshield-verify="+token, record)
	assert.NotEqual(t, NewVerificationToken(), token)
}

func TestVerifyMatchingRecord(t *testing.T) {
	token := "abc-123"
	v := &DomainVerifier{
		LookupTXT: func(domain string) ([]string, error) {
			return []string{
				"v=spf1 include:_spf.google.com ~all",
				"assetshield-verify=abc-123",
			}, nil
		},
		Whois: func(domain string) (string, error) {
			return "Registrant: Smith & Associates", nil
		},
	}

	ok, whoisInfo, err := v.Verify("smithlaw.com", token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Registrant: Smith & Associates", whoisInfo)
}

func TestVerifyTrimsWhitespace(t *testing.T) {
	v := &DomainVerifier{
		LookupTXT: func(domain string) ([]string, error) {
			return []string{"  assetshield-verify=abc-123  "}, nil
		},
	}

	ok, _, err := v.Verify("smithlaw.com", "abc-123")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyRecordMissing(t *testing.T) {
	v := &DomainVerifier{
		LookupTXT: func(domain string) ([]string, error) {
			return []string{"v=spf1 -all"}, nil
		},
	}

	ok, whoisInfo, err := v.Verify("smithlaw.com", "abc-123")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, whoisInfo)
}

func TestVerifyWrongToken(t *testing.T) {
	v := &DomainVerifier{
		LookupTXT: func(domain string) ([]string, error) {
			return []string{"assetshield-verify=other-token"}, nil
		},
	}

	ok, _, err := v.Verify("smithlaw.com", "abc-123")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyLookupFailure(t *testing.T) {
	v := &DomainVerifier{
		LookupTXT: func(domain string) ([]string, error) {
			return nil, errors.New("no such host")
		},
	}

	ok, _, err := v.Verify("smithlaw.com", "abc-123")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestVerifyWhoisFailureIsNonFatal(t *testing.T) {
	v := &DomainVerifier{
		LookupTXT: func(domain string) ([]string, error) {
			return []string{"assetshield-verify=abc-123"}, nil
		},
		Whois: func(domain string) (string, error) {
			return "", errors.New("whois timeout")
		},
	}

	ok, whoisInfo, err := v.Verify("smithlaw.com", "abc-123")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, whoisInfo)
}
