package paysheet

import (
	"context"
	"errors"

	"github.com/nbulatovi/ElectriciansNow/paysheet/models"
	"golang.org/x/exp/slog"
)

// Processor submits a tokenized credential for a funds preauthorization.
// Implementations never return a Go error: every outcome, transport failure
// included, is one of the PreauthResult variants.
type Processor interface {
	Preauthorize(ctx context.Context, token models.Token, amountCents int64, currency string) models.PreauthResult
}

// Service is the preauthorization workflow: probe the native capability,
// build the sheet request, present it, and exchange the approval token with
// the processor. It holds no mutable state, so invocations may run
// concurrently.
type Service struct {
	cfg       *Config
	logger    *slog.Logger
	presenter *Presenter
	processor Processor

	// Probed once at construction; the capability does not change while the
	// process runs.
	sheetAvailable bool
}

func NewService(logger *slog.Logger, cfg *Config, sheet Sheet, processor Processor) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if sheet == nil {
		sheet = DetectSheet()
	}

	return &Service{
		cfg:            cfg,
		logger:         logger,
		presenter:      NewPresenter(sheet),
		processor:      processor,
		sheetAvailable: sheet.Available(),
	}
}

// Preauthorize runs the full workflow for one transaction. Every path yields
// a terminal PreauthResult; no step is retried and no error escapes.
func (s *Service) Preauthorize(ctx context.Context, amountCents int64, description string) models.PreauthResult {
	if !s.sheetAvailable {
		s.logger.Info("native payment sheet unavailable, returning mock result",
			slog.Int64("amount_cents", amountCents))
		return models.Mock(amountCents, description)
	}

	req, err := s.BuildRequest(amountCents, description)
	if err != nil {
		return models.ConfigurationError(err.Error())
	}

	token, err := s.presenter.Present(ctx, req)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			s.logger.Info("payment sheet dismissed without authorization")
			return models.UserCancelled()
		}
		s.logger.Error("payment sheet presentation failed", "err", err)
		return models.ConfigurationError(err.Error())
	}

	result := s.processor.Preauthorize(ctx, token, amountCents, s.cfg.CurrencyCode)

	s.logger.Info("preauthorization finished",
		slog.String("status", string(result.Status)),
		slog.Int64("amount_cents", amountCents))

	return result
}
