package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
)

// SignatureHeader carries the hex HMAC digest on inbound webhook
// deliveries.
const SignatureHeader = "X-LSBX-Signature"

// ComputeSignature returns the hex-encoded HMAC-SHA256 digest of the
// raw payload under the signing secret.
func ComputeSignature(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature is the valid digest of
// payload. The comparison is constant time; any malformed or mismatched
// signature reports false rather than an error.
func VerifySignature(payload []byte, signature, secret string) bool {
	if signature == "" {
		return false
	}
	provided, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hmac.Equal(provided, mac.Sum(nil))
}

// HeaderVerifier checks deliveries arriving as http.Requests, reading
// the digest from a configurable header.
type HeaderVerifier struct {
	Secret string
	Header string
}

func NewHeaderVerifier(secret string) *HeaderVerifier {
	return &HeaderVerifier{Secret: secret, Header: SignatureHeader}
}

func (v *HeaderVerifier) headerName() string {
	if v.Header != "" {
		return v.Header
	}
	return SignatureHeader
}

// Verify checks body against the signature header of req.
func (v *HeaderVerifier) Verify(req *http.Request, body []byte) bool {
	if req == nil {
		return false
	}
	return VerifySignature(body, req.Header.Get(v.headerName()), v.Secret)
}
