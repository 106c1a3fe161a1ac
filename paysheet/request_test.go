package paysheet_test

import (
	"io"
	"testing"

	"github.com/nbulatovi/ElectriciansNow/paysheet"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard))
}

func configuredService(cfg *paysheet.Config) *paysheet.Service {
	if cfg == nil {
		cfg = paysheet.DefaultConfig()
		cfg.MerchantID = "merchant.test.electricians-now"
	}
	return paysheet.NewService(testLogger(), cfg, nil, nil)
}

func TestBuildRequest_RejectsNegativeAmount(t *testing.T) {
	svc := configuredService(nil)

	for _, amount := range []int64{-1, -100, -12000} {
		req, err := svc.BuildRequest(amount, "Service call")
		require.Error(t, err)
		require.Nil(t, req)
	}
}

func TestBuildRequest_RejectsEmptyDescription(t *testing.T) {
	svc := configuredService(nil)

	req, err := svc.BuildRequest(12000, "")
	require.Error(t, err)
	require.Nil(t, req)
}

func TestBuildRequest_RejectsUnconfiguredMerchant(t *testing.T) {
	for _, merchantID := range []string{"", paysheet.PlaceholderMerchantID} {
		cfg := paysheet.DefaultConfig()
		cfg.MerchantID = merchantID

		req, err := configuredService(cfg).BuildRequest(12000, "Service call")
		require.Error(t, err)
		require.Nil(t, req)
		require.Contains(t, err.Error(), "merchant identifier")
	}
}

func TestBuildRequest_SingleSummaryItem(t *testing.T) {
	svc := configuredService(nil)

	cases := []struct {
		cents int64
		want  string
	}{
		{12000, "120.00"},
		{5, "0.05"},
		{0, "0.00"},
	}

	for _, c := range cases {
		req, err := svc.BuildRequest(c.cents, "Panel inspection")
		require.NoError(t, err)
		require.Len(t, req.SummaryItems, 1)
		require.Equal(t, "Panel inspection", req.SummaryItems[0].Label)
		require.Equal(t, c.want, req.SummaryItems[0].Amount)
		require.Equal(t, c.cents, req.SummaryItems[0].AmountCents)
	}
}

func TestBuildRequest_CarriesConfiguredIdentity(t *testing.T) {
	cfg := paysheet.DefaultConfig()
	cfg.MerchantID = "merchant.test.electricians-now"

	req, err := configuredService(cfg).BuildRequest(12000, "Service call")
	require.NoError(t, err)

	require.Equal(t, "merchant.test.electricians-now", req.MerchantID)
	require.Equal(t, "US", req.CountryCode)
	require.Equal(t, "USD", req.CurrencyCode)
	require.Equal(t, []string{"visa", "mastercard", "amex"}, req.SupportedNetworks)
	require.Equal(t, uint(1), req.MerchantCapabilities)
}

func TestBuildRequest_DescriptorOwnsNetworkList(t *testing.T) {
	cfg := paysheet.DefaultConfig()
	cfg.MerchantID = "merchant.test.electricians-now"
	svc := configuredService(cfg)

	req, err := svc.BuildRequest(100, "Service call")
	require.NoError(t, err)

	req.SupportedNetworks[0] = "scribbled"

	again, err := svc.BuildRequest(100, "Service call")
	require.NoError(t, err)
	require.Equal(t, []string{"visa", "mastercard", "amex"}, again.SupportedNetworks)
}
