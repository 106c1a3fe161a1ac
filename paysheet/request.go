package paysheet

import (
	"errors"
	"fmt"

	"github.com/nbulatovi/ElectriciansNow/internal/money"
	"github.com/nbulatovi/ElectriciansNow/paysheet/models"
)

// BuildRequest assembles the payment-sheet request for one transaction:
// merchant identity and sheet parameters from configuration, plus a single
// summary line item for the described amount. Pure function of its inputs
// and the static configuration.
func (s *Service) BuildRequest(amountCents int64, description string) (*models.PaymentRequest, error) {
	if amountCents < 0 {
		return nil, fmt.Errorf("amount must not be negative, got %d", amountCents)
	}
	if description == "" {
		return nil, errors.New("description is required")
	}
	if !s.cfg.merchantConfigured() {
		return nil, errors.New("merchant identifier is not configured")
	}

	// The descriptor owns its slices: config must stay untouched even if a
	// sheet implementation misbehaves and writes into the request.
	networks := append([]string(nil), s.cfg.SupportedNetworks...)

	return &models.PaymentRequest{
		MerchantID:           s.cfg.MerchantID,
		CountryCode:          s.cfg.CountryCode,
		CurrencyCode:         s.cfg.CurrencyCode,
		SupportedNetworks:    networks,
		MerchantCapabilities: s.cfg.MerchantCapabilities,
		SummaryItems: []models.SummaryItem{
			{
				Label:       description,
				Amount:      money.Format(amountCents),
				AmountCents: amountCents,
			},
		},
	}, nil
}
