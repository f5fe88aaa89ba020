package cardgen

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashPANHMAC computes HMAC-SHA256 over a PAN using a secret key (pepper).
func HashPANHMAC(pan string, key []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(pan))
	return h.Sum(nil)
}

// Fingerprint is a short, log-safe handle for a PAN: the first 8 bytes of
// its HMAC in hex. Repeated swipes of one card share a fingerprint.
func Fingerprint(pan string, key []byte) string {
	return hex.EncodeToString(HashPANHMAC(NormalizePAN(pan), key)[:8])
}
