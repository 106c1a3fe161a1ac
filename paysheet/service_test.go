package paysheet_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/nbulatovi/ElectriciansNow/internal/square"
	"github.com/nbulatovi/ElectriciansNow/paysheet"
	"github.com/nbulatovi/ElectriciansNow/paysheet/models"
	"github.com/stretchr/testify/require"
)

type countingProcessor struct {
	calls  int32
	result models.PreauthResult
}

func (p *countingProcessor) Preauthorize(ctx context.Context, token models.Token, amountCents int64, currency string) models.PreauthResult {
	atomic.AddInt32(&p.calls, 1)
	return p.result
}

func authorizingSheet() *scriptedSheet {
	return &scriptedSheet{
		available: true,
		script: func(d paysheet.Delegate) {
			d.OnAuthorize(models.Token("tok-bytes"), func(bool) {})
			d.OnFinish()
		},
	}
}

func serviceConfig() *paysheet.Config {
	cfg := paysheet.DefaultConfig()
	cfg.MerchantID = "merchant.test.electricians-now"
	return cfg
}

func TestPreauthorize_MockWithoutNativeCapability(t *testing.T) {
	processor := &countingProcessor{}
	svc := paysheet.NewService(testLogger(), serviceConfig(), nil, processor)

	result := svc.Preauthorize(context.Background(), 12000, "Service call")

	require.Equal(t, models.StatusMock, result.Status)
	require.Equal(t, int64(12000), result.AmountCents)
	require.Equal(t, "Service call", result.Description)
	require.Zero(t, atomic.LoadInt32(&processor.calls))
}

func TestPreauthorize_UserCancelledSkipsProcessor(t *testing.T) {
	sheet := &scriptedSheet{
		available: true,
		script: func(d paysheet.Delegate) {
			d.OnFinish()
		},
	}
	processor := &countingProcessor{}
	svc := paysheet.NewService(testLogger(), serviceConfig(), sheet, processor)

	result := svc.Preauthorize(context.Background(), 12000, "Service call")

	require.Equal(t, models.StatusUserCancelled, result.Status)
	require.Zero(t, atomic.LoadInt32(&processor.calls))
}

func TestPreauthorize_ProtocolViolationSkipsProcessor(t *testing.T) {
	sheet := &scriptedSheet{
		available: true,
		script: func(d paysheet.Delegate) {
			d.OnAuthorize(models.Token("tok-1"), func(bool) {})
			d.OnAuthorize(models.Token("tok-2"), func(bool) {})
			d.OnFinish()
		},
	}
	processor := &countingProcessor{}
	svc := paysheet.NewService(testLogger(), serviceConfig(), sheet, processor)

	result := svc.Preauthorize(context.Background(), 12000, "Service call")

	require.Equal(t, models.StatusConfigurationError, result.Status)
	require.Zero(t, atomic.LoadInt32(&processor.calls))
}

func TestPreauthorize_BadInputSkipsPresentation(t *testing.T) {
	processor := &countingProcessor{}
	svc := paysheet.NewService(testLogger(), serviceConfig(), authorizingSheet(), processor)

	result := svc.Preauthorize(context.Background(), -1, "Service call")

	require.Equal(t, models.StatusConfigurationError, result.Status)
	require.Zero(t, atomic.LoadInt32(&processor.calls))
}

func TestPreauthorize_AuthorizedEndToEnd(t *testing.T) {
	var keys []string
	var sources []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			IdempotencyKey string `json:"idempotency_key"`
			SourceID       string `json:"source_id"`
			Autocomplete   bool   `json:"autocomplete"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		keys = append(keys, body.IdempotencyKey)
		sources = append(sources, body.SourceID)
		require.False(t, body.Autocomplete)

		fmt.Fprint(w, `{"payment":{"id":"REF123","status":"APPROVED"}}`)
	}))
	defer srv.Close()

	processor := square.New(srv.URL, "test-access-token", "test-location", nil)
	svc := paysheet.NewService(testLogger(), serviceConfig(), authorizingSheet(), processor)

	result := svc.Preauthorize(context.Background(), 12000, "Service call")
	require.Equal(t, models.StatusAuthorized, result.Status)
	require.Equal(t, "REF123", result.ProcessorReference)
	require.Equal(t, []string{"tok-bytes"}, sources)

	// A second identical invocation is a new logical transaction and must
	// carry a new idempotency key.
	result = svc.Preauthorize(context.Background(), 12000, "Service call")
	require.Equal(t, models.StatusAuthorized, result.Status)

	require.Len(t, keys, 2)
	require.NotEqual(t, keys[0], keys[1])
}

func TestPreauthorize_TransportErrorEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	processor := square.New(srv.URL, "test-access-token", "test-location", nil)
	svc := paysheet.NewService(testLogger(), serviceConfig(), authorizingSheet(), processor)

	result := svc.Preauthorize(context.Background(), 12000, "Service call")

	require.Equal(t, models.StatusTransportError, result.Status)
	require.NotEmpty(t, result.Detail)
}
