package security

// CVVProvider computes the card verification value written in the
// discretionary data of Track 2 (CVV1 / CVC1).
type CVVProvider interface {
	// ComputeCVV takes the PAN without its check digit, the YYMM expiry and
	// the 3-digit service code. width is 3 or 4; anything else means 3.
	ComputeCVV(panNoCD, expiryYYMM, serviceCode string, width int) (string, error)
}
