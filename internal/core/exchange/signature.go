package exchange

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	HeaderSignatureMethod    = "Signature-Method"
	HeaderSignatureKeyID     = "Signature-Keyid"
	HeaderSignatureAlgorithm = "Signature-Algorithm"
	HeaderSignature          = "Signature"

	SignatureMethodHMAC       = "HMAC"
	DefaultSignatureAlgorithm = "sha256"
)

var hashes = map[string]func() hash.Hash{
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"sha384": sha512.New384,
	"sha512": sha512.New,
}

var (
	errNotSigned      = errors.New("no signing exchange")
	errKeyIDEmpty     = errors.New("token code empty")
	errKeyIDInvalid   = errors.New("token code invalid")
	errSignatureWrong = errors.New("signature failed")
)

// IsSignedExchange reports whether the notification claims an HMAC signature.
func IsSignedExchange(h http.Header) bool {
	return headerValue(h, HeaderSignatureMethod) == SignatureMethodHMAC
}

// headerValue looks a header up case-insensitively, Input.Headers may be built by hand.
func headerValue(h http.Header, name string) string {
	if v := h.Get(name); v != "" {
		return v
	}
	for k, values := range h {
		if strings.EqualFold(k, name) && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// SignatureVerifier checks HMAC signed exchanges. Failures are logged, never returned.
type SignatureVerifier struct {
	logger *zap.Logger
}

func NewSignatureVerifier(logger *zap.Logger) *SignatureVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SignatureVerifier{logger: logger}
}

// Verify reports whether body was signed with password by the token code username.
func (v *SignatureVerifier) Verify(h http.Header, body []byte, username, password string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			v.logger.Warn("signature verification panicked", zap.Any("panic", r))
			ok = false
		}
	}()

	if err := checkSignature(h, body, username, password); err != nil {
		v.logger.Debug("signature verification failed", zap.Error(err))
		return false
	}
	return true
}

func checkSignature(h http.Header, body []byte, username, password string) error {
	if !IsSignedExchange(h) {
		return errNotSigned
	}

	keyID := strings.TrimSpace(headerValue(h, HeaderSignatureKeyID))
	if keyID == "" {
		return errKeyIDEmpty
	}
	if keyID != username {
		return errKeyIDInvalid
	}

	algo := strings.ToLower(strings.TrimSpace(headerValue(h, HeaderSignatureAlgorithm)))
	if algo == "" {
		algo = DefaultSignatureAlgorithm
	}
	newHash, found := hashes[algo]
	if !found {
		return fmt.Errorf("unsupported signature algorithm %q", algo)
	}

	expected := Sign(newHash, body, password)
	if !hmac.Equal([]byte(headerValue(h, HeaderSignature)), []byte(expected)) {
		return errSignatureWrong
	}
	return nil
}

// Sign returns the lowercase hex HMAC of body.
func Sign(newHash func() hash.Hash, body []byte, secret string) string {
	mac := hmac.New(newHash, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignSHA256 signs body the way the upstream does by default.
func SignSHA256(body []byte, secret string) string {
	return Sign(sha256.New, body, secret)
}
