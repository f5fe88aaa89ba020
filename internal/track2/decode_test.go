package track2

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleTrack = ";4000123456789010=29051019990000?"

// The service code is a fixed 3-digit field after YYMM, so the sample's
// extra data is "9990000". The reader's screen always started the extra
// data 8 characters past the separator; "19990000" or "1019990000" would
// need the service code to be shown as extra too.
func TestDecode_SampleCard(t *testing.T) {
	raw, err := Encode(sampleTrack, EncodeOptions{SilenceBytes: 2, LeadingZeros: 3})
	require.NoError(t, err)

	card, err := Decode(raw)
	require.NoError(t, err)

	require.Equal(t, "4000123456789010", card.Number)
	require.Equal(t, "4000 1234 5678 9010", card.DisplayNumber())
	require.Equal(t, "05", card.ExpirationMonth)
	require.Equal(t, "29", card.ExpirationYear)
	require.Equal(t, "05/29", card.Expiration())
	require.Equal(t, "2905", card.ExpiryYYMM())
	require.Equal(t, "101", card.ServiceCode)
	require.Equal(t, "9990000", card.Extra())
	require.Equal(t, "4000123456789010=29051019990000", card.TrackData())
}

func TestDecodeCharacters_RoundTrip(t *testing.T) {
	tracks := []string{
		sampleTrack,
		";1234=2905101?",
		";5413330089010434=25121010000000000000?",
		";9=0000000?",
		";3333333333333=99129999999999999999999999?",
	}
	shapes := []EncodeOptions{
		{},
		{LeadingZeros: 1},
		{LeadingZeros: 7},
		{SilenceBytes: 4, LeadingZeros: 5, TrailingBytes: 3},
	}
	for _, track := range tracks {
		for _, opts := range shapes {
			raw, err := Encode(track, opts)
			require.NoError(t, err)

			got, err := DecodeCharacters(raw)
			require.NoError(t, err, "track %s opts %+v", track, opts)
			require.Equal(t, track, got)
		}
	}
}

func TestDecode_SilencePrefix(t *testing.T) {
	plain, err := Encode(sampleTrack, EncodeOptions{})
	require.NoError(t, err)
	want, err := Decode(plain)
	require.NoError(t, err)

	for _, n := range []int{1, 2, 8} {
		prefixed := strings.Repeat("FF", n) + plain
		got, err := Decode(prefixed)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestDecode_Idempotent(t *testing.T) {
	raw, err := Encode(sampleTrack, EncodeOptions{LeadingZeros: 2})
	require.NoError(t, err)

	first, err1 := Decode(raw)
	second, err2 := Decode(raw)
	require.NoError(t, err1)
	require.NoError(t, err2)
	require.Equal(t, first, second)

	bad := raw[:len(raw)-1]
	_, err1 = Decode(bad)
	_, err2 = Decode(bad)
	require.Equal(t, err1, err2)
}

func TestDecode_SingleBitFlipIsParityError(t *testing.T) {
	syms, err := encodeSymbols(sampleTrack)
	require.NoError(t, err)

	for k := range syms {
		for bit := 0; bit < symbolBits; bit++ {
			if k == 0 && bit == 0 {
				// first one bit marks the start of data
				continue
			}
			flipped := syms[k] ^ 1<<bit
			if flipped == endMarker {
				continue
			}
			mod := append([]byte(nil), syms...)
			mod[k] = flipped

			_, err := DecodeCharacters(rawMessage(mod, EncodeOptions{}))
			require.ErrorIs(t, err, ErrParity, "symbol %d bit %d", k, bit)
		}
	}
}

func TestDecode_CorruptNibbleIsChecksumError(t *testing.T) {
	syms, err := encodeSymbols(sampleTrack)
	require.NoError(t, err)

	for k := range syms {
		mod := append([]byte(nil), syms...)
		mod[k] = symbolFor((syms[k] & 0x0f) ^ 0x02)
		require.True(t, oddParity[mod[k]])

		_, err := DecodeCharacters(rawMessage(mod, EncodeOptions{}))
		require.ErrorIs(t, err, ErrChecksum, "symbol %d", k)

		kind, ok := KindOf(err)
		require.True(t, ok)
		require.Equal(t, KindChecksum, kind)
	}
}

func TestDecodeCharacters_EndOfInputWithoutMarker(t *testing.T) {
	// 7 characters + LRC = 40 bits, so the stream ends on a byte boundary
	// with no room left for the end marker.
	chars := ";123456"
	syms, err := encodeSymbols(chars)
	require.NoError(t, err)
	require.Len(t, syms, 8)

	got, err := DecodeCharacters(packWithoutMarker(syms))
	require.NoError(t, err)
	require.Equal(t, chars, got)

	// same path, bad LRC
	syms[1] = symbolFor((syms[1] & 0x0f) ^ 0x02)
	_, err = DecodeCharacters(packWithoutMarker(syms))
	require.ErrorIs(t, err, ErrChecksum)
}

func packWithoutMarker(syms []byte) string {
	var w bitWriter
	for _, s := range syms {
		w.writeBits(s, symbolBits)
	}
	w.flush()
	for i := range w.buf {
		w.buf[i] = ^w.buf[i]
	}
	return hex.EncodeToString(w.buf)
}

func TestDecode_FormatRejection(t *testing.T) {
	tracks := map[string]string{
		"missing start sentinel": "1234=2905101?",
		"missing end sentinel":   ";1234=2905101",
		"missing separator":      ";12342905101?",
		"empty card number":      ";=2905101?",
		"short expiration":       ";1234=29?",
		"short service code":     ";1234=290510?",
	}
	for name, track := range tracks {
		t.Run(name, func(t *testing.T) {
			raw, err := Encode(track, EncodeOptions{})
			require.NoError(t, err)

			chars, err := DecodeCharacters(raw)
			require.NoError(t, err)
			require.Equal(t, track, chars)

			card, err := Decode(raw)
			require.ErrorIs(t, err, ErrFormat)
			require.Nil(t, card)
		})
	}
}

func TestDecode_NoSignal(t *testing.T) {
	chars, err := DecodeCharacters("FFFFFFFF")
	require.NoError(t, err)
	require.Empty(t, chars)

	_, err = Decode("FFFFFFFF")
	require.ErrorIs(t, err, ErrFormat)

	_, err = Decode("")
	require.ErrorIs(t, err, ErrFormat)
}

func TestDecode_FramingErrors(t *testing.T) {
	for _, raw := range []string{"F", "FFF", "FFZZ", "0x12", "FF FF"} {
		card, err := Decode(raw)
		require.ErrorIs(t, err, ErrFraming, raw)
		require.Nil(t, card)

		var de *DecodeError
		require.ErrorAs(t, err, &de)
		require.Equal(t, KindFraming, de.Kind)
	}
}

func TestEncode_Rejects(t *testing.T) {
	_, err := Encode("", EncodeOptions{})
	require.ErrorIs(t, err, ErrUnencodable)

	_, err = Encode(";12A4=2905101?", EncodeOptions{})
	require.ErrorIs(t, err, ErrUnencodable)

	// '4' is 0100: its first transmitted bit is zero
	_, err = Encode("4000=2905101?", EncodeOptions{})
	require.ErrorIs(t, err, ErrUnencodable)
}

func TestLRC(t *testing.T) {
	lrc, err := LRC(";1")
	require.NoError(t, err)
	// 0xB ^ 0x1 = 0xA
	require.Equal(t, byte(':'), lrc)
}
