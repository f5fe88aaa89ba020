package security

import (
	"fmt"

	"github.com/alovak/cardflow-swipe/internal/cardgen"
	"github.com/alovak/cardflow-swipe/internal/track2"
)

// Outcome of a CVV1 check on a decoded swipe.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeMismatch Outcome = "mismatch"
	OutcomeSkipped  Outcome = "skipped"
)

// Placement says where the CVV sits inside the discretionary data.
type Placement struct {
	Offset int
	Width  int
}

func (pl Placement) width() int {
	if pl.Width == 4 {
		return 4
	}
	return 3
}

// Expected computes the CVV the card should carry.
func Expected(p CVVProvider, card *track2.Card, width int) (string, error) {
	return p.ComputeCVV(cardgen.StripCheckDigit(card.Number), card.ExpiryYYMM(), card.ServiceCode, width)
}

// Check compares the CVV in the discretionary data with the computed one.
// A nil provider, or discretionary data too short to hold the value, is
// reported as skipped.
func Check(p CVVProvider, card *track2.Card, pl Placement) (Outcome, error) {
	if p == nil {
		return OutcomeSkipped, nil
	}
	w := pl.width()
	if pl.Offset < 0 || len(card.Discretionary) < pl.Offset+w {
		return OutcomeSkipped, nil
	}
	want, err := Expected(p, card, w)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("computing cvv: %w", err)
	}
	if card.Discretionary[pl.Offset:pl.Offset+w] != want {
		return OutcomeMismatch, nil
	}
	return OutcomeOK, nil
}

// Embed writes the computed CVV into discretionary data at pl, padding
// with zeros when the data is shorter. Used to build test swipes.
func Embed(p CVVProvider, pan, yymm, serviceCode, discretionary string, pl Placement) (string, error) {
	w := pl.width()
	cvv, err := p.ComputeCVV(cardgen.StripCheckDigit(pan), yymm, serviceCode, w)
	if err != nil {
		return "", err
	}
	b := []byte(discretionary)
	for len(b) < pl.Offset+w {
		b = append(b, '0')
	}
	copy(b[pl.Offset:], cvv)
	return string(b), nil
}
