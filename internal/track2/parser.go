package track2

import (
	"strings"
)

const (
	StartSentinel = ';'
	Separator     = '='
	EndSentinel   = '?'
)

// Field widths following the separator.
const (
	expirationWidth  = 4
	serviceCodeWidth = 3
)

// Card holds the fields of a validated Track 2 read.
type Card struct {
	// Number is the PAN as read, without grouping.
	Number string
	// ExpirationYear and ExpirationMonth are two digits each. The track
	// carries them as YYMM.
	ExpirationYear  string
	ExpirationMonth string
	ServiceCode     string
	Discretionary   string

	data string
}

// DisplayNumber groups the card number in blocks of four digits.
func (c *Card) DisplayNumber() string {
	return groupDigits(c.Number, 4)
}

// Expiration returns the card-face form MM/YY.
func (c *Card) Expiration() string {
	return c.ExpirationMonth + "/" + c.ExpirationYear
}

// ExpiryYYMM returns the expiration in track (and ISO 8583 DE14) order.
func (c *Card) ExpiryYYMM() string {
	return c.ExpirationYear + c.ExpirationMonth
}

// Extra is the discretionary data shown next to the card number.
func (c *Card) Extra() string {
	return c.Discretionary
}

// TrackData returns the characters between the sentinels, as carried in
// ISO 8583 DE35.
func (c *Card) TrackData() string {
	return c.data
}

// Parse splits decoded Track 2 characters into card fields. A read taken
// with the card swiped backwards fails the same way as a corrupted one.
func Parse(track string) (*Card, error) {
	body, err := sentinelBody(track)
	if err != nil {
		return nil, err
	}
	number, rest, err := cardNumberField(body)
	if err != nil {
		return nil, err
	}
	year, month, rest, err := expirationField(rest)
	if err != nil {
		return nil, err
	}
	serviceCode, rest, err := fixedField(rest, serviceCodeWidth, "service code")
	if err != nil {
		return nil, err
	}
	return &Card{
		Number:          number,
		ExpirationYear:  year,
		ExpirationMonth: month,
		ServiceCode:     serviceCode,
		Discretionary:   rest,
		data:            body,
	}, nil
}

func sentinelBody(track string) (string, error) {
	if len(track) < 2 {
		return "", decodeErrorf(KindFormat, "track too short (%d characters)", len(track))
	}
	if track[0] != StartSentinel {
		return "", decodeErrorf(KindFormat, "missing start sentinel, got %q", track[0])
	}
	if track[len(track)-1] != EndSentinel {
		return "", decodeErrorf(KindFormat, "missing end sentinel, got %q", track[len(track)-1])
	}
	return track[1 : len(track)-1], nil
}

// cardNumberField returns everything up to the first separator.
func cardNumberField(body string) (number, rest string, err error) {
	sep := strings.IndexByte(body, Separator)
	switch {
	case sep < 0:
		return "", "", decodeErrorf(KindFormat, "missing field separator")
	case sep == 0:
		return "", "", decodeErrorf(KindFormat, "empty card number")
	}
	return body[:sep], body[sep+1:], nil
}

// expirationField reads YYMM.
func expirationField(s string) (year, month, rest string, err error) {
	yymm, rest, err := fixedField(s, expirationWidth, "expiration")
	if err != nil {
		return "", "", "", err
	}
	return yymm[:2], yymm[2:], rest, nil
}

func fixedField(s string, width int, name string) (field, rest string, err error) {
	if len(s) < width {
		return "", "", decodeErrorf(KindFormat, "%s needs %d characters, %d left", name, width, len(s))
	}
	return s[:width], s[width:], nil
}

func groupDigits(s string, n int) string {
	if len(s) <= n {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + len(s)/n)
	for i := 0; i < len(s); i++ {
		if i > 0 && i%n == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
