package track2

import (
	"encoding/hex"
	"errors"
)

// ReadHex turns a reader message ("FF0FE3...") into the captured bytes.
// Upper and lower case digits are both accepted.
func ReadHex(msg string) ([]byte, error) {
	if len(msg)%2 != 0 {
		return nil, decodeErrorf(KindFraming, "odd message length %d", len(msg))
	}
	data, err := hex.DecodeString(msg)
	if err != nil {
		var inv hex.InvalidByteError
		if errors.As(err, &inv) {
			return nil, decodeErrorf(KindFraming, "invalid hex character %q", byte(inv))
		}
		return nil, decodeErrorf(KindFraming, "%v", err)
	}
	return data, nil
}
