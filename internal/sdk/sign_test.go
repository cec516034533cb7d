package sdk

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestSign(t *testing.T) {
	tests := []struct {
		name   string
		body   []byte
		secret string
	}{
		{
			name:   "event body",
			body:   []byte(`{"event_id":"Fy4uC1_FlN","params":{"param1":"Ionic Product Added to cart"}}`),
			secret: "sdk-secret",
		},
		{
			name:   "empty body",
			body:   nil,
			secret: "secret",
		},
		{
			name:   "empty secret",
			body:   []byte(`{"test":true}`),
			secret: "",
		},
		{
			name:   "unicode body",
			body:   []byte(`{"name":"café","price":"€10"}`),
			secret: "unicode-key-日本語",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := sign(tt.body, tt.secret)

			decoded, err := hex.DecodeString(sig)
			if err != nil {
				t.Fatalf("signature is not valid hex: %v", err)
			}
			if len(decoded) != 32 {
				t.Fatalf("expected 32 bytes, got %d", len(decoded))
			}

			mac := hmac.New(sha256.New, []byte(tt.secret))
			mac.Write(tt.body)
			expected := hex.EncodeToString(mac.Sum(nil))
			if sig != expected {
				t.Errorf("signature mismatch:\n  got:  %s\n  want: %s", sig, expected)
			}

			if !VerifySignature(tt.body, tt.secret, sig) {
				t.Error("VerifySignature rejected a valid signature")
			}
		})
	}
}

func TestVerifySignature_Rejects(t *testing.T) {
	body := []byte(`{"event_id":"test"}`)
	sig := sign(body, "secret-1")

	if VerifySignature(body, "secret-2", sig) {
		t.Error("signature accepted under a different secret")
	}
	if VerifySignature([]byte(`{"event_id":"other"}`), "secret-1", sig) {
		t.Error("signature accepted for a different body")
	}
	if VerifySignature(body, "secret-1", "not-hex") {
		t.Error("malformed signature accepted")
	}
}
