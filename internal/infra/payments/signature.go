package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidSignature — подпись вебхука не сошлась; тело не обрабатываем.
var ErrInvalidSignature = errors.New("payments: invalid webhook signature")

// Допустимый разбег между меткой времени в подписи и нашими часами,
// защита от replay старых вебхуков.
const signatureTolerance = 5 * time.Minute

// VerifySignature проверяет заголовок Stripe-Signature (схема v1):
// HMAC-SHA256(secret, "<t>.<payload>") и сравнение веркой hmac.Equal.
// Это единственная граница аутентификации для мутаций премиума.
func VerifySignature(payload []byte, header, secret string, now time.Time) error {
	var ts int64
	var sigs [][]byte

	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return ErrInvalidSignature
			}
			ts = n
		case "v1":
			raw, err := hex.DecodeString(v)
			if err != nil {
				continue
			}
			sigs = append(sigs, raw)
		}
	}
	if ts == 0 || len(sigs) == 0 {
		return ErrInvalidSignature
	}

	sent := time.Unix(ts, 0)
	if d := now.Sub(sent); d > signatureTolerance || d < -signatureTolerance {
		return ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, sig := range sigs {
		if hmac.Equal(expected, sig) {
			return nil
		}
	}
	return ErrInvalidSignature
}
