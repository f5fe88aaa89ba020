package track2

const (
	symbolBits = 5
	symbolMask = 1<<symbolBits - 1
)

// demodulator turns captured bytes into 5-bit symbols.
//
// The reader samples the head signal inverted (high level = 0, low level = 1)
// and LSB first, and symbols straddle byte boundaries, so bits are pushed
// above whatever is still pending and pulled out five at a time from the
// bottom. bits stays below 13 between calls to next.
type demodulator struct {
	value   uint32
	bits    int
	started bool
}

// feed appends one captured byte to the accumulator. Bytes of pure silence
// before the first one bit are dropped, and the zero bits below the first
// one bit are clocking, not data.
func (d *demodulator) feed(raw byte) {
	b := ^raw
	avail := 8
	if !d.started {
		if b == 0 {
			return
		}
		for b&1 == 0 {
			b >>= 1
			avail--
		}
		d.started = true
	}
	d.value |= uint32(b) << d.bits
	d.bits += avail
}

// next pops the lowest pending symbol, or reports false when fewer than
// five bits are buffered.
func (d *demodulator) next() (byte, bool) {
	if d.bits < symbolBits {
		return 0, false
	}
	sym := byte(d.value & symbolMask)
	d.value >>= symbolBits
	d.bits -= symbolBits
	return sym, true
}
