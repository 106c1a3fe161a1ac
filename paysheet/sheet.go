package paysheet

import (
	"context"
	"errors"

	"github.com/nbulatovi/ElectriciansNow/paysheet/models"
)

// Sheet is the native payment-sheet capability. A host that supports the
// platform sheet supplies an implementation that renders the request as a
// modal UI and drives the Delegate callbacks; every other host uses the
// absent sheet returned by DetectSheet.
type Sheet interface {
	// Available reports whether the capability exists on this host. It is
	// probed once at service construction and never re-checked.
	Available() bool

	// Present shows the sheet for the given request. It returns once the
	// sheet is on screen; the outcome arrives through the delegate.
	Present(ctx context.Context, req *models.PaymentRequest, delegate Delegate) error
}

// Delegate receives the native sheet's callbacks for one presentation.
type Delegate interface {
	// OnAuthorize fires when the user approves payment. The completion
	// callback must be invoked before returning: the sheet blocks on it to
	// dismiss its UI. ok=true acknowledges the token was captured.
	OnAuthorize(token models.Token, completion func(ok bool))

	// OnFinish fires when the sheet is dismissed, whether or not the user
	// authorized. The sheet is released after this call.
	OnFinish()
}

// DetectSheet probes the host for the native payment-sheet capability.
// There is no in-process binding to a platform sheet in this module, so the
// probe yields the absent sheet; an embedding host with a real binding
// injects its own Sheet into NewService instead.
func DetectSheet() Sheet {
	return absentSheet{}
}

type absentSheet struct{}

func (absentSheet) Available() bool { return false }

func (absentSheet) Present(context.Context, *models.PaymentRequest, Delegate) error {
	return errors.New("native payment sheet is not available on this host")
}
