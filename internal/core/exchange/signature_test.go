package exchange_test

import (
	"crypto/sha512"
	"net/http"
	"testing"

	"github.com/DanielPopoola/payorder-sdk/internal/core/exchange"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	tokenCode = "AT-1234-5678"
	apiToken  = "secret-api-token"
)

func signedHeaders(body []byte) http.Header {
	h := http.Header{}
	h.Set("signature-method", "HMAC")
	h.Set("signature-keyid", tokenCode)
	h.Set("signature-algorithm", "sha256")
	h.Set("signature", exchange.SignSHA256(body, apiToken))
	return h
}

func TestIsSignedExchange(t *testing.T) {
	h := http.Header{}
	assert.False(t, exchange.IsSignedExchange(h))

	h.Set("SIGNATURE-METHOD", "HMAC")
	assert.True(t, exchange.IsSignedExchange(h))

	h.Set("signature-method", "hmac")
	assert.False(t, exchange.IsSignedExchange(h))
}

func TestSignatureVerifier_Verify(t *testing.T) {
	body := []byte(structuredPaid)
	v := exchange.NewSignatureVerifier(zap.NewNop())

	t.Run("valid signature", func(t *testing.T) {
		assert.True(t, v.Verify(signedHeaders(body), body, tokenCode, apiToken))
	})

	t.Run("default algorithm is sha256", func(t *testing.T) {
		h := signedHeaders(body)
		h.Del("signature-algorithm")
		assert.True(t, v.Verify(h, body, tokenCode, apiToken))
	})

	t.Run("sha512", func(t *testing.T) {
		h := signedHeaders(body)
		h.Set("signature-algorithm", "sha512")
		h.Set("signature", exchange.Sign(sha512.New, body, apiToken))
		assert.True(t, v.Verify(h, body, tokenCode, apiToken))
	})

	t.Run("key id is trimmed", func(t *testing.T) {
		h := signedHeaders(body)
		h.Set("signature-keyid", "  "+tokenCode+" ")
		assert.True(t, v.Verify(h, body, tokenCode, apiToken))
	})

	t.Run("not signed whatever the other headers say", func(t *testing.T) {
		h := signedHeaders(body)
		h.Set("signature-method", "NONE")
		assert.False(t, v.Verify(h, body, tokenCode, apiToken))
	})

	t.Run("empty key id", func(t *testing.T) {
		h := signedHeaders(body)
		h.Del("signature-keyid")
		assert.False(t, v.Verify(h, body, tokenCode, apiToken))
	})

	t.Run("foreign key id", func(t *testing.T) {
		h := signedHeaders(body)
		h.Set("signature-keyid", "AT-9999-9999")
		assert.False(t, v.Verify(h, body, tokenCode, apiToken))
	})

	t.Run("tampered body", func(t *testing.T) {
		assert.False(t, v.Verify(signedHeaders(body), append([]byte{' '}, body...), tokenCode, apiToken))
	})

	t.Run("wrong secret", func(t *testing.T) {
		assert.False(t, v.Verify(signedHeaders(body), body, tokenCode, "other"))
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		h := signedHeaders(body)
		h.Set("signature-algorithm", "md4")
		assert.False(t, v.Verify(h, body, tokenCode, apiToken))
	})
}

func TestSignatureVerifier_LogsFailures(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	v := exchange.NewSignatureVerifier(zap.New(core))

	body := []byte("{}")
	h := signedHeaders(body)
	h.Set("signature-keyid", "someone-else")

	assert.False(t, v.Verify(h, body, tokenCode, apiToken))
	assert.Equal(t, 1, observed.FilterMessage("signature verification failed").Len())
}

func TestSignatureVerifier_NilLogger(t *testing.T) {
	v := exchange.NewSignatureVerifier(nil)
	assert.False(t, v.Verify(http.Header{}, nil, "", ""))
}

func TestSignatureVerifier_NonCanonicalHeaderKeys(t *testing.T) {
	body := []byte(`{"type":"order"}`)
	h := http.Header{
		"signature-method":    {"HMAC"},
		"signature-keyid":     {tokenCode},
		"signature-algorithm": {"sha256"},
		"signature":           {exchange.SignSHA256(body, apiToken)},
	}

	assert.True(t, exchange.IsSignedExchange(h))
	assert.True(t, exchange.NewSignatureVerifier(nil).Verify(h, body, tokenCode, apiToken))
}
