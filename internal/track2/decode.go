package track2

// Decode runs one raw reader message through the whole pipeline. On failure
// the error is a *DecodeError and no card is returned. Decode keeps no state
// between calls.
func Decode(raw string) (*Card, error) {
	chars, err := DecodeCharacters(raw)
	if err != nil {
		return nil, err
	}
	return Parse(chars)
}

// DecodeCharacters demodulates a raw message into Track 2 characters,
// sentinels included and the LRC character removed.
func DecodeCharacters(raw string) (string, error) {
	data, err := ReadHex(raw)
	if err != nil {
		return "", err
	}

	var (
		demod demodulator
		dec   symbolDecoder
	)
	for _, b := range data {
		demod.feed(b)
		for {
			sym, ok := demod.next()
			if !ok {
				break
			}
			done, err := dec.push(sym)
			if err != nil {
				return "", err
			}
			if done {
				return dec.finish()
			}
		}
	}
	return dec.finish()
}
