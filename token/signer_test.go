package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

var testSecret = []byte("at-least-thirty-two-bytes-long!!")

func TestNewSigner(t *testing.T) {
	tests := []struct {
		name    string
		secret  []byte
		alg     Algorithm
		wantErr error
	}{
		{name: "hs256", secret: testSecret, alg: HS256},
		{name: "hs384", secret: testSecret, alg: HS384},
		{name: "hs512", secret: testSecret, alg: HS512},
		{name: "empty secret", secret: nil, alg: HS256, wantErr: ErrEmptySecret},
		{name: "unsupported algorithm", secret: testSecret, alg: "RS256", wantErr: ErrUnsupportedAlgorithm},
		{name: "blank algorithm", secret: testSecret, alg: "", wantErr: ErrUnsupportedAlgorithm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSigner(tt.secret, tt.alg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewSigner() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSigner_Sign_CompactFormat(t *testing.T) {
	s, err := NewSigner(testSecret, HS256)
	if err != nil {
		t.Fatalf("NewSigner() error = %v", err)
	}

	compact, err := s.Sign(New(WithTime(buildTime), WithSubject("user-1")))
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	segments := strings.Split(compact, ".")
	if len(segments) != 3 {
		t.Fatalf("compact token has %d segments, want 3", len(segments))
	}

	headerJSON, err := base64.RawURLEncoding.DecodeString(segments[0])
	if err != nil {
		t.Fatalf("header is not base64url: %v", err)
	}
	var header map[string]any
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		t.Fatalf("header is not JSON: %v", err)
	}
	if header["alg"] != "HS256" {
		t.Errorf("header alg = %v, want HS256", header["alg"])
	}
}

func TestSigner_Sign_Deterministic(t *testing.T) {
	s, err := NewSigner(testSecret, HS512)
	if err != nil {
		t.Fatalf("NewSigner() error = %v", err)
	}

	c := New(WithTime(buildTime), WithSubject("user-1"), WithTokenID("tok-1"))
	first, err := s.Sign(c)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	second, err := s.Sign(c)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if first != second {
		t.Error("signing identical claims twice produced different tokens")
	}
}

func TestSigner_Sign_OmitsAbsentClaims(t *testing.T) {
	s, err := NewSigner(testSecret, HS256)
	if err != nil {
		t.Fatalf("NewSigner() error = %v", err)
	}

	// No subject, no jti, no expiry: none of them may appear in the
	// payload, not even as null.
	compact, err := s.Sign(New(WithTime(buildTime), WithoutTokenID(), WithInfiniteTTL()))
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	payloadJSON, err := base64.RawURLEncoding.DecodeString(strings.Split(compact, ".")[1])
	if err != nil {
		t.Fatalf("payload is not base64url: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(payloadJSON, &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	for _, claim := range []string{"sub", "jti", "exp", "iss", "aud", "scopes", "meta"} {
		if _, present := payload[claim]; present {
			t.Errorf("absent claim %q was emitted into the payload", claim)
		}
	}
	for _, claim := range []string{"iat", "nbf"} {
		if _, present := payload[claim]; !present {
			t.Errorf("claim %q missing from payload", claim)
		}
	}
}
