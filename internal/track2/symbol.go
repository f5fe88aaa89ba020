package track2

import "math/bits"

// endMarker is the all-zero symbol that follows the LRC character.
const endMarker = 0

// oddParity[s] reports whether the 5-bit symbol s carries an odd number of
// one bits (4 data bits plus the parity bit in bit 4).
var oddParity = func() (t [1 << symbolBits]bool) {
	for v := range t {
		t[v] = bits.OnesCount8(uint8(v))%2 == 1
	}
	return t
}()

// symbolDecoder accumulates characters and the longitudinal redundancy
// check for a single message.
type symbolDecoder struct {
	chars []byte
	lrc   byte
}

// push consumes one symbol. done is true once the end marker is reached.
func (s *symbolDecoder) push(sym byte) (done bool, err error) {
	if sym == endMarker {
		return true, nil
	}
	if !oddParity[sym] {
		return false, decodeErrorf(KindParity, "symbol %#02x at position %d", sym, len(s.chars))
	}
	nibble := sym & 0x0f
	s.chars = append(s.chars, '0'+nibble)
	s.lrc ^= nibble
	return false, nil
}

// finish checks the LRC and returns the characters without the trailing
// LRC character. Running out of input before the end marker takes the same
// path.
func (s *symbolDecoder) finish() (string, error) {
	if s.lrc != 0 {
		return "", decodeErrorf(KindChecksum, "lrc %#x over %d characters", s.lrc, len(s.chars))
	}
	if len(s.chars) == 0 {
		return "", nil
	}
	return string(s.chars[:len(s.chars)-1]), nil
}
