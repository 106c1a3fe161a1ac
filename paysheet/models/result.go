package models

// ResultStatus tags the terminal outcome of one preauthorization workflow.
type ResultStatus string

const (
	StatusAuthorized         ResultStatus = "AUTHORIZED"
	StatusDeclined           ResultStatus = "DECLINED"
	StatusTransportError     ResultStatus = "TRANSPORT_ERROR"
	StatusUserCancelled      ResultStatus = "USER_CANCELLED"
	StatusConfigurationError ResultStatus = "CONFIGURATION_ERROR"
	StatusMock               ResultStatus = "MOCK"
)

// PreauthResult is the single return type of the workflow. Every failure
// path is represented here; no error escapes the orchestrator unmapped.
type PreauthResult struct {
	Status ResultStatus `json:"status"`

	// Set when Status is AUTHORIZED.
	ProcessorReference string         `json:"processor_reference,omitempty"`
	RawResponse        map[string]any `json:"raw_response,omitempty"`

	// Set when Status is DECLINED.
	Reason string `json:"reason,omitempty"`

	// Set when Status is TRANSPORT_ERROR or CONFIGURATION_ERROR.
	Detail string `json:"detail,omitempty"`

	// Set when Status is MOCK: the inputs are echoed back so callers can
	// exercise the workflow on hosts without the native capability.
	AmountCents int64  `json:"amount_cents,omitempty"`
	Description string `json:"description,omitempty"`
}

func Authorized(reference string, raw map[string]any) PreauthResult {
	return PreauthResult{Status: StatusAuthorized, ProcessorReference: reference, RawResponse: raw}
}

func Declined(reason string) PreauthResult {
	return PreauthResult{Status: StatusDeclined, Reason: reason}
}

func TransportError(detail string) PreauthResult {
	return PreauthResult{Status: StatusTransportError, Detail: detail}
}

func UserCancelled() PreauthResult {
	return PreauthResult{Status: StatusUserCancelled}
}

func ConfigurationError(detail string) PreauthResult {
	return PreauthResult{Status: StatusConfigurationError, Detail: detail}
}

func Mock(amountCents int64, description string) PreauthResult {
	return PreauthResult{Status: StatusMock, AmountCents: amountCents, Description: description}
}
