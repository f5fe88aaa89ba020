package track2

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		number  string
		display string
		exp     string
		sc      string
		extra   string
	}{
		{";4000123456789010=29051019990000?", "4000123456789010", "4000 1234 5678 9010", "05/29", "101", "9990000"},
		{";1234=2905101?", "1234", "1234", "05/29", "101", ""},
		{";541333008901043=2512201?", "541333008901043", "5413 3300 8901 043", "12/25", "201", ""},
		{";12345=0001000=?", "12345", "1234 5", "01/00", "000", "="},
	}
	for _, c := range cases {
		card, err := Parse(c.in)
		require.NoError(t, err, c.in)
		require.Equal(t, c.number, card.Number)
		require.Equal(t, c.display, card.DisplayNumber())
		require.Equal(t, c.exp, card.Expiration())
		require.Equal(t, c.sc, card.ServiceCode)
		require.Equal(t, c.extra, card.Extra())
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{
		"",
		";",
		"?",
		";?",
		"4000123456789010=29051019990000?",
		";4000123456789010=29051019990000",
		"?00009991015092=0109876543210004;", // reversed
		";4000123456789010?",
		";=29051019990000?",
		";4000=2?",
		";4000=2905?",
		";4000=29051?",
	} {
		card, err := Parse(in)
		require.ErrorIs(t, err, ErrFormat, in)
		require.Nil(t, card)
	}
}

func TestFixedField(t *testing.T) {
	field, rest, err := fixedField("2905101", expirationWidth, "expiration")
	require.NoError(t, err)
	require.Equal(t, "2905", field)
	require.Equal(t, "101", rest)

	_, _, err = fixedField("29", expirationWidth, "expiration")
	require.ErrorIs(t, err, ErrFormat)
	require.Contains(t, err.Error(), "expiration needs 4 characters")
}

func TestGroupDigits(t *testing.T) {
	require.Equal(t, "", groupDigits("", 4))
	require.Equal(t, "123", groupDigits("123", 4))
	require.Equal(t, "1234", groupDigits("1234", 4))
	require.Equal(t, "1234 5", groupDigits("12345", 4))
	require.Equal(t, "1234 5678", groupDigits("12345678", 4))
}

func TestDemodulator(t *testing.T) {
	var d demodulator

	// pure silence is skipped
	d.feed(0xff)
	d.feed(0xff)
	require.False(t, d.started)
	require.Zero(t, d.bits)

	// 0xE7 inverted is 0x18: three clock zeros, then 11000
	d.feed(0xe7)
	require.True(t, d.started)
	require.Equal(t, 5, d.bits)

	sym, ok := d.next()
	require.True(t, ok)
	require.Equal(t, byte(0x03), sym)
	_, ok = d.next()
	require.False(t, ok)

	// once started every byte counts, zero or not
	d.feed(0xff)
	require.Equal(t, 8, d.bits)
	sym, ok = d.next()
	require.True(t, ok)
	require.Equal(t, byte(0), sym)
	require.Equal(t, 3, d.bits)
}

func TestDemodulator_BitsStayBounded(t *testing.T) {
	var d demodulator
	for i := 0; i < 512; i++ {
		d.feed(byte(i * 37))
		for {
			if _, ok := d.next(); !ok {
				break
			}
		}
		require.Less(t, d.bits, symbolBits)
		require.Less(t, d.bits+8, 13)
	}
}

func TestOddParityTable(t *testing.T) {
	// bit n of 0x96696996 is the parity of n
	const table = 0x96696996
	for v := 0; v < 32; v++ {
		require.Equal(t, (table>>v)&1 == 1, oddParity[v], "symbol %d", v)
	}
}
