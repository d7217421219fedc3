package endpoint

import (
	"fmt"
	"strings"
)

const (
	KeyBankingServiceURL = "BANKING_SERVICE_URL"
	KeyAccountServiceURL = "ACCOUNT_SERVICE_URL"
	KeyCardServiceURL    = "CARD_SERVICE_URL"
)

// Config holds the service URLs the portal talks to. Only BankingServiceURL
// is required.
type Config struct {
	BankingServiceURL string `json:"BANKING_SERVICE_URL" mapstructure:"banking_service_url"`
	AccountServiceURL string `json:"ACCOUNT_SERVICE_URL,omitempty" mapstructure:"account_service_url"`
	CardServiceURL    string `json:"CARD_SERVICE_URL,omitempty" mapstructure:"card_service_url"`
}

type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeDevelopment, "dev", "":
		return ModeDevelopment, nil
	case ModeProduction, "prod":
		return ModeProduction, nil
	default:
		return "", fmt.Errorf("unknown portal mode %q", s)
	}
}

func withScheme(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "http://" + raw
}
