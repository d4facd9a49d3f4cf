package webhooks

import (
	"bytes"
	"net/http"
	"testing"
)

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"event_id":"123","event_code":"CUSTOMER","action":"CREATED"}`)
	secret := "my-webhook-secret"
	signature := ComputeSignature(payload, secret)

	if !VerifySignature(payload, signature, secret) {
		t.Fatalf("expected valid signature to verify")
	}
	if VerifySignature(payload, signature, "other-secret") {
		t.Fatalf("wrong secret must not verify")
	}
	if VerifySignature([]byte(`{"event_id":"456"}`), signature, secret) {
		t.Fatalf("tampered payload must not verify")
	}
	if VerifySignature(payload, "", secret) {
		t.Fatalf("empty signature must not verify")
	}
	if VerifySignature(payload, "not-hex!!", secret) {
		t.Fatalf("malformed signature must not verify")
	}
}

func TestHeaderVerifier(t *testing.T) {
	payload := []byte(`{"event_id":"123"}`)
	secret := "my-webhook-secret"
	verifier := NewHeaderVerifier(secret)

	req, _ := http.NewRequest("POST", "/hooks", bytes.NewReader(payload))
	req.Header.Set(SignatureHeader, ComputeSignature(payload, secret))
	if !verifier.Verify(req, payload) {
		t.Fatalf("expected signed request to verify")
	}

	req.Header.Set(SignatureHeader, ComputeSignature(payload, "wrong"))
	if verifier.Verify(req, payload) {
		t.Fatalf("expected mismatched digest to fail")
	}

	req.Header.Del(SignatureHeader)
	if verifier.Verify(req, payload) {
		t.Fatalf("expected missing header to fail")
	}
	if verifier.Verify(nil, payload) {
		t.Fatalf("expected nil request to fail")
	}
}

func TestHeaderVerifier_CustomHeader(t *testing.T) {
	payload := []byte(`{"event_id":"123"}`)
	verifier := &HeaderVerifier{Secret: "s", Header: "X-Alt-Signature"}

	req, _ := http.NewRequest("POST", "/hooks", bytes.NewReader(payload))
	req.Header.Set("X-Alt-Signature", ComputeSignature(payload, "s"))
	if !verifier.Verify(req, payload) {
		t.Fatalf("expected custom header to be honored")
	}
}
