package track2

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var ErrUnencodable = errors.New("track2: cannot encode")

// EncodeOptions shapes the synthetic signal around the encoded characters.
type EncodeOptions struct {
	// SilenceBytes of idle signal ahead of the data.
	SilenceBytes int
	// LeadingZeros clocking bits between the silence and the first symbol.
	LeadingZeros int
	// TrailingBytes of idle signal after the end marker.
	TrailingBytes int
}

// Encode produces the raw reader message for chars: the LRC character is
// appended, every character becomes an odd-parity symbol, and an end marker
// closes the stream. It is the inverse of DecodeCharacters.
func Encode(chars string, opts EncodeOptions) (string, error) {
	syms, err := encodeSymbols(chars)
	if err != nil {
		return "", err
	}
	return rawMessage(syms, opts), nil
}

// LRC returns the character that makes the XOR of all nibbles zero.
func LRC(chars string) (byte, error) {
	var lrc byte
	for i := 0; i < len(chars); i++ {
		n, err := nibbleOf(chars[i])
		if err != nil {
			return 0, err
		}
		lrc ^= n
	}
	return '0' + lrc, nil
}

func nibbleOf(c byte) (byte, error) {
	if c < '0' || c > '?' {
		return 0, fmt.Errorf("%w: character %q is outside the Track 2 set", ErrUnencodable, c)
	}
	return c - '0', nil
}

// symbolFor sets the parity bit so the symbol has odd parity.
func symbolFor(nibble byte) byte {
	sym := nibble & 0x0f
	if !oddParity[sym] {
		sym |= 1 << 4
	}
	return sym
}

func encodeSymbols(chars string) ([]byte, error) {
	if chars == "" {
		return nil, fmt.Errorf("%w: nothing to encode", ErrUnencodable)
	}
	lrc, err := LRC(chars)
	if err != nil {
		return nil, err
	}
	syms := make([]byte, 0, len(chars)+1)
	for i := 0; i < len(chars); i++ {
		syms = append(syms, symbolFor(chars[i]-'0'))
	}
	syms = append(syms, symbolFor(lrc-'0'))
	// the reader cannot tell a leading zero data bit from clocking
	if syms[0]&1 == 0 {
		return nil, fmt.Errorf("%w: first character %q starts with a zero bit", ErrUnencodable, chars[0])
	}
	return syms, nil
}

// rawMessage packs symbols LSB first, adds the end marker and the idle
// signal, and inverts polarity the way the reader captures it.
func rawMessage(syms []byte, opts EncodeOptions) string {
	var w bitWriter
	for i := 0; i < opts.SilenceBytes*8+opts.LeadingZeros; i++ {
		w.writeBit(0)
	}
	for _, s := range syms {
		w.writeBits(s, symbolBits)
	}
	w.writeBits(endMarker, symbolBits)
	w.flush()
	for i := 0; i < opts.TrailingBytes; i++ {
		w.buf = append(w.buf, 0)
	}

	for i := range w.buf {
		w.buf[i] = ^w.buf[i]
	}
	return strings.ToUpper(hex.EncodeToString(w.buf))
}

type bitWriter struct {
	buf  []byte
	cur  byte
	used int
}

func (w *bitWriter) writeBit(bit byte) {
	w.cur |= (bit & 1) << w.used
	w.used++
	if w.used == 8 {
		w.buf = append(w.buf, w.cur)
		w.cur, w.used = 0, 0
	}
}

func (w *bitWriter) writeBits(v byte, n int) {
	for i := 0; i < n; i++ {
		w.writeBit(v >> i)
	}
}

func (w *bitWriter) flush() {
	if w.used > 0 {
		w.buf = append(w.buf, w.cur)
		w.cur, w.used = 0, 0
	}
}
