// Package display turns decode results into the three lines a reader
// screen shows: card id, expiration and extra data.
package display

import (
	"github.com/alovak/cardflow-swipe/internal/expiry"
	"github.com/alovak/cardflow-swipe/internal/track2"
)

// ErrorTitle replaces the card id when a swipe is rejected.
const ErrorTitle = "Error !"

const (
	MsgFraming  = "Read error (framing)"
	MsgParity   = "Read error (parity)"
	MsgChecksum = "Read error (LRC)"
	MsgFormat   = "Bad format, may be a reverse swipe ?"
	MsgUnknown  = "Read error"
)

// Fields is what the display sink renders for one swipe.
type Fields struct {
	CardID     string `json:"card_id"`
	Expiration string `json:"expiration"`
	Extra      string `json:"extra"`
}

// Message returns the user-facing text for a decode error.
func Message(err error) string {
	kind, ok := track2.KindOf(err)
	if !ok {
		return MsgUnknown
	}
	switch kind {
	case track2.KindFraming:
		return MsgFraming
	case track2.KindParity:
		return MsgParity
	case track2.KindChecksum:
		return MsgChecksum
	case track2.KindFormat:
		return MsgFormat
	default:
		return MsgUnknown
	}
}

// ForCard shows the expiration in card-face order. A read whose month is
// out of range is still shown as read.
func ForCard(card *track2.Card) Fields {
	exp, err := expiry.CardFace(card.ExpiryYYMM())
	if err != nil {
		exp = card.Expiration()
	}
	return Fields{
		CardID:     card.DisplayNumber(),
		Expiration: exp,
		Extra:      card.Extra(),
	}
}

func ForError(err error) Fields {
	return Fields{
		CardID: ErrorTitle,
		Extra:  Message(err),
	}
}

// For maps the result of track2.Decode.
func For(card *track2.Card, err error) Fields {
	if err != nil || card == nil {
		return ForError(err)
	}
	return ForCard(card)
}
