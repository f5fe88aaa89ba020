package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/alovak/cardflow-swipe/internal/cardgen"
	"github.com/alovak/cardflow-swipe/internal/expiry"
)

// 注意：HMAC 演示实现，不是真实 3DES CVV 算法；仅用于联调与测试刷卡数据。

var ErrKeyMissing = errors.New("cvv key is required")

// domain separation so track values never collide with other uses of the key
const domainTrack = "track-cvv1-v1"

type DemoProvider struct {
	key []byte
}

func NewDemoProvider(key []byte) *DemoProvider { return &DemoProvider{key: key} }

func (p *DemoProvider) ComputeCVV(panNoCD, yymm, sc string, width int) (string, error) {
	if len(p.key) == 0 {
		return "", ErrKeyMissing
	}
	if err := expiry.ValidateYYMM(yymm); err != nil {
		return "", err
	}
	if len(sc) != 3 || !cardgen.IsDigits(sc) {
		return "", fmt.Errorf("service code must be 3 digits")
	}
	if noCD := len(panNoCD); noCD < 12 || noCD > 18 || !cardgen.IsDigits(panNoCD) {
		return "", fmt.Errorf("panNoCD must be 12..18 digits")
	}
	msg := []byte(panNoCD + "|" + yymm + "|" + sc + "|" + domainTrack)
	return hmacTruncatedDecimal(p.key, msg, width), nil
}

// Wipe zeroes the key and disables the provider. Go gives no guarantee
// about copies made elsewhere.
func (p *DemoProvider) Wipe() {
	for i := range p.key {
		p.key[i] = 0
	}
	p.key = nil
}

// hmacTruncatedDecimal: HMAC-SHA256 动态截断后格式化为 3/4 位十进制。
func hmacTruncatedDecimal(key, msg []byte, width int) string {
	h := hmac.New(sha256.New, key)
	h.Write(msg)
	sum := h.Sum(nil)
	off := sum[len(sum)-1] & 0x0f
	code := (uint32(sum[off])&0x7f)<<24 |
		uint32(sum[off+1])<<16 |
		uint32(sum[off+2])<<8 |
		uint32(sum[off+3])
	if width == 4 {
		return fmt.Sprintf("%04d", code%10000)
	}
	return fmt.Sprintf("%03d", code%1000)
}
