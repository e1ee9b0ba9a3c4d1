package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testSecret = "whsec_test"

func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts.Unix())
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifySignature_Valid(t *testing.T) {
	now := time.Now()
	payload := []byte(`{"type":"checkout.session.completed"}`)
	header := signPayload(payload, testSecret, now)

	assert.NoError(t, VerifySignature(payload, header, testSecret, now))
}

func TestVerifySignature_Tampered(t *testing.T) {
	now := time.Now()
	payload := []byte(`{"type":"checkout.session.completed"}`)
	header := signPayload(payload, testSecret, now)

	tampered := []byte(`{"type":"customer.subscription.deleted"}`)
	assert.ErrorIs(t, VerifySignature(tampered, header, testSecret, now), ErrInvalidSignature)
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	now := time.Now()
	payload := []byte(`{}`)
	header := signPayload(payload, "whsec_other", now)

	assert.ErrorIs(t, VerifySignature(payload, header, testSecret, now), ErrInvalidSignature)
}

func TestVerifySignature_StaleTimestamp(t *testing.T) {
	now := time.Now()
	payload := []byte(`{}`)
	header := signPayload(payload, testSecret, now.Add(-10*time.Minute))

	assert.ErrorIs(t, VerifySignature(payload, header, testSecret, now), ErrInvalidSignature)
}

func TestVerifySignature_MalformedHeader(t *testing.T) {
	now := time.Now()
	for _, header := range []string{"", "garbage", "t=abc,v1=00", "v1=00", "t=123"} {
		assert.ErrorIs(t, VerifySignature([]byte(`{}`), header, testSecret, now), ErrInvalidSignature, "header %q", header)
	}
}
