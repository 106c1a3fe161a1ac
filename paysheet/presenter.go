package paysheet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nbulatovi/ElectriciansNow/paysheet/models"
)

var (
	// ErrCancelled reports that the user dismissed the sheet without
	// authorizing. It is a normal outcome, not a system failure.
	ErrCancelled = errors.New("payment cancelled by user")

	// ErrProtocol reports a delegate contract violation by the native layer,
	// such as a second OnAuthorize for the same presentation.
	ErrProtocol = errors.New("payment sheet delegate protocol violation")
)

// Presenter drives one native-sheet presentation at a time: it shows the
// request, waits for the user, and hands back the approval token. Each call
// to Present owns a fresh presentation; nothing is shared between calls.
type Presenter struct {
	sheet Sheet
}

func NewPresenter(sheet Sheet) *Presenter {
	return &Presenter{sheet: sheet}
}

// Present shows the payment sheet and blocks until it is dismissed.
// It returns the approval token, ErrCancelled if the user backed out, or a
// descriptive error for native-layer failures. Presenting is a user-facing,
// non-idempotent action and is never retried here.
func (p *Presenter) Present(ctx context.Context, req *models.PaymentRequest) (token models.Token, err error) {
	pres := &presentation{
		state: statePresenting,
		done:  make(chan struct{}),
	}

	// The native layer is trusted but not assumed perfect: a panic while
	// configuring or presenting stays inside this boundary.
	defer func() {
		if r := recover(); r != nil {
			token, err = nil, fmt.Errorf("presenting payment sheet: panic: %v", r)
		}
	}()

	if err := p.sheet.Present(ctx, req, pres); err != nil {
		return nil, fmt.Errorf("presenting payment sheet: %w", err)
	}

	select {
	case <-pres.done:
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for payment sheet: %w", ctx.Err())
	}

	return pres.outcome()
}

type presentationState int

const (
	statePresenting presentationState = iota
	stateAuthorized
	stateCancelled
	stateFailed
)

// presentation is the delegate for a single sheet lifetime. State only moves
// forward: Presenting -> Authorized | Cancelled | Failed, and exactly one
// terminal outcome is reported through done.
type presentation struct {
	mu       sync.Mutex
	state    presentationState
	token    models.Token
	err      error
	finished bool
	done     chan struct{}
}

func (s *presentation) OnAuthorize(token models.Token, completion func(ok bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != statePresenting {
		// Double authorize, or authorize after dismissal. Discard anything
		// captured so far; the token must not be forwarded.
		s.state = stateFailed
		s.token = nil
		s.err = fmt.Errorf("%w: unexpected OnAuthorize", ErrProtocol)
		completion(false)
		return
	}

	if len(token) == 0 {
		s.state = stateFailed
		s.err = errors.New("payment sheet produced an empty token")
		completion(false)
		return
	}

	// Acknowledge as soon as the token bytes are captured; the sheet blocks
	// on this signal to dismiss. The remote call happens later and must not
	// hold up the UI.
	s.token = append(models.Token(nil), token...)
	s.state = stateAuthorized
	completion(true)
}

func (s *presentation) OnFinish() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == statePresenting {
		s.state = stateCancelled
	}
	if !s.finished {
		s.finished = true
		close(s.done)
	}
}

func (s *presentation) outcome() (models.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateAuthorized:
		return s.token, nil
	case stateCancelled:
		return nil, ErrCancelled
	case stateFailed:
		return nil, s.err
	default:
		return nil, fmt.Errorf("%w: sheet dismissed in unexpected state", ErrProtocol)
	}
}
