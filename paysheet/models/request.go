package models

// SummaryItem is a single line on the payment sheet. Amount is the decimal
// string shown to the user; AmountCents is the integer it was derived from.
type SummaryItem struct {
	Label       string
	Amount      string
	AmountCents int64
}

// PaymentRequest describes one presentation of the native payment sheet.
// It is built fresh for every workflow invocation and never mutated after
// construction.
type PaymentRequest struct {
	MerchantID           string
	CountryCode          string
	CurrencyCode         string
	SupportedNetworks    []string
	MerchantCapabilities uint
	SummaryItems         []SummaryItem
}
