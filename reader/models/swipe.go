package models

import "github.com/alovak/cardflow-swipe/internal/display"

type SwipeRequest struct {
	// Raw is the reader message: hex byte pairs, one per captured byte.
	Raw string `json:"raw"`
}

// Result is the outcome of one swipe. Exactly one of Card and Error is set.
type Result struct {
	ID      string         `json:"id"`
	Display display.Fields `json:"display"`
	Card    *Card          `json:"card,omitempty"`
	Error   *Error         `json:"error,omitempty"`
}

type Card struct {
	// Number is grouped by four digits, as on the card face.
	Number          string `json:"number"`
	MaskedNumber    string `json:"masked_number"`
	Fingerprint     string `json:"fingerprint"`
	ExpirationMonth string `json:"expiration_month"`
	ExpirationYear  string `json:"expiration_year"`
	ServiceCode     string `json:"service_code"`
	Discretionary   string `json:"discretionary"`

	LuhnValid   bool   `json:"luhn_valid"`
	ExpiryValid bool   `json:"expiry_valid"`
	Expired     bool   `json:"expired"`
	CVV         string `json:"cvv"`

	// ResponseCode is DE39 of the authorization, when one was sent.
	ResponseCode string `json:"response_code,omitempty"`
}

type Error struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
