package iso8583

import (
	"fmt"

	"github.com/alovak/cardflow-swipe/internal/track2"
	"github.com/moov-io/iso8583"
	"github.com/moov-io/iso8583/encoding"
	"github.com/moov-io/iso8583/field"
	"github.com/moov-io/iso8583/padding"
	"github.com/moov-io/iso8583/prefix"
)

const (
	mtiAuthorizationRequest = "0100"
	processingCodePurchase  = "000000"
	// magnetic stripe read, full track 2, PIN entry capable
	posEntryModeMagstripe = "901"
)

// Spec is Spec87 with DE3 zero-padded: Spec87 keeps the processing code as
// a bare number, so "000000" would pack as a single digit.
var Spec = newSpec()

func newSpec() *iso8583.MessageSpec {
	fields := make(map[int]field.Field, len(iso8583.Spec87.Fields))
	for id, f := range iso8583.Spec87.Fields {
		fields[id] = f
	}
	fields[3] = field.NewNumeric(&field.Spec{
		Length:      6,
		Description: "Processing Code",
		Enc:         encoding.ASCII,
		Pref:        prefix.ASCII.Fixed,
		Pad:         padding.Left('0'),
	})
	return &iso8583.MessageSpec{
		Name:   "ISO 8583 v1987 ASCII, card-present swipe",
		Fields: fields,
	}
}

// Authorization is a card-present purchase built from a swipe.
type Authorization struct {
	Card     *track2.Card
	Amount   int64
	Currency string // ISO 4217 numeric, e.g. "840"
	STAN     int
}

// BuildRequest creates an 0100 on Spec carrying the swipe in DE35.
func BuildRequest(a Authorization) (*iso8583.Message, error) {
	if a.Card == nil {
		return nil, fmt.Errorf("authorization without card")
	}
	if a.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if len(a.Currency) != 3 {
		return nil, fmt.Errorf("currency must be 3-digit ISO 4217 code")
	}

	msg := iso8583.NewMessage(Spec)
	msg.MTI(mtiAuthorizationRequest)

	fields := []struct {
		id  int
		val string
	}{
		{2, a.Card.Number},
		{3, processingCodePurchase},
		{4, fmt.Sprintf("%012d", a.Amount)},
		{11, fmt.Sprintf("%06d", a.STAN%1000000)},
		{14, a.Card.ExpiryYYMM()},
		{22, posEntryModeMagstripe},
		{35, a.Card.TrackData()},
		{49, a.Currency},
	}
	for _, f := range fields {
		if err := msg.Field(f.id, f.val); err != nil {
			return nil, fmt.Errorf("setting field %d: %w", f.id, err)
		}
	}
	return msg, nil
}
