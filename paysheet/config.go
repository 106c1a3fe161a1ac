package paysheet

import (
	"os"
	"strings"
)

// PlaceholderMerchantID is the sample value shipped in .env.example. A
// merchant id left at this value counts as unconfigured.
const PlaceholderMerchantID = "merchant.example.replace-me"

// Config is the read-only configuration for the preauthorization workflow.
// It is loaded once before the first invocation and never written afterwards,
// so concurrent reads need no synchronization. The processor credential lives
// here and must never be logged or hard-coded.
type Config struct {
	HTTPAddr string

	// Payment sheet identity.
	MerchantID           string
	CountryCode          string
	CurrencyCode         string
	SupportedNetworks    []string
	MerchantCapabilities uint

	// Remote payments API.
	ProcessorBaseURL     string
	ProcessorAccessToken string
	ProcessorLocationID  string
}

func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:          "localhost:8080",
		CountryCode:       "US",
		CurrencyCode:      "USD",
		SupportedNetworks: []string{"visa", "mastercard", "amex"},
		// Bit 0: 3-D Secure capable.
		MerchantCapabilities: 1 << 0,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back to
// defaults for anything unset. Missing merchant id or credential is not an
// error here: it surfaces as a ConfigurationError result at invocation time.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	cfg.HTTPAddr = getenv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.MerchantID = getenv("MERCHANT_ID", cfg.MerchantID)
	cfg.CountryCode = getenv("COUNTRY_CODE", cfg.CountryCode)
	cfg.CurrencyCode = getenv("CURRENCY_CODE", cfg.CurrencyCode)
	if v := os.Getenv("SUPPORTED_NETWORKS"); v != "" {
		cfg.SupportedNetworks = splitList(v)
	}
	cfg.ProcessorBaseURL = getenv("SQUARE_BASE_URL", cfg.ProcessorBaseURL)
	cfg.ProcessorAccessToken = getenv("SQUARE_ACCESS_TOKEN", cfg.ProcessorAccessToken)
	cfg.ProcessorLocationID = getenv("SQUARE_LOCATION_ID", cfg.ProcessorLocationID)
	return cfg
}

func (c *Config) merchantConfigured() bool {
	return c.MerchantID != "" && c.MerchantID != PlaceholderMerchantID
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
