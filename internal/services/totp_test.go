package services

import (
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
)

const testSecret = "JBSWY3DPEHPK3PXP"

func newTestTOTPService() *TOTPService {
	return NewTOTPService("Portfolio Admin", "Portfolio")
}

func TestTOTPService_GenerateSecret(t *testing.T) {
	svc := newTestTOTPService()

	first, err := svc.GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret() error = %v", err)
	}
	if first == "" {
		t.Fatal("expected non-empty secret")
	}

	second, err := svc.GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret() error = %v", err)
	}
	if first == second {
		t.Fatal("expected two generated secrets to differ")
	}

	code, err := totp.GenerateCode(first, time.Now())
	if err != nil {
		t.Fatalf("failed generating code for new secret: %v", err)
	}
	if !svc.Verify(code, first) {
		t.Fatal("expected code from a freshly generated secret to verify")
	}
}

func TestTOTPService_Verify(t *testing.T) {
	svc := newTestTOTPService()
	now := time.Now()

	t.Run("accepts code for the current window", func(t *testing.T) {
		code, err := totp.GenerateCode(testSecret, now)
		if err != nil {
			t.Fatalf("failed generating code: %v", err)
		}
		if !svc.Verify(code, testSecret) {
			t.Fatal("expected current-window code to verify")
		}
	})

	t.Run("accepts code from the previous step within skew", func(t *testing.T) {
		code, err := totp.GenerateCode(testSecret, now.Add(-30*time.Second))
		if err != nil {
			t.Fatalf("failed generating code: %v", err)
		}
		if !svc.Verify(code, testSecret) {
			t.Fatal("expected previous-step code to verify within the skew window")
		}
	})

	t.Run("rejects code from well outside the window", func(t *testing.T) {
		code, err := totp.GenerateCode(testSecret, now.Add(-5*time.Minute))
		if err != nil {
			t.Fatalf("failed generating code: %v", err)
		}
		if svc.Verify(code, testSecret) {
			t.Fatal("expected stale code to be rejected")
		}
	})

	t.Run("rejects code generated from a different secret", func(t *testing.T) {
		code, err := totp.GenerateCode("GEZDGNBVGY3TQOJQ", now)
		if err != nil {
			t.Fatalf("failed generating code: %v", err)
		}
		if svc.Verify(code, testSecret) {
			t.Fatal("expected code from a different secret to be rejected")
		}
	})

	t.Run("rejects malformed codes", func(t *testing.T) {
		for _, code := range []string{"", "12345", "1234567", "abcdef", "12 456"} {
			if svc.Verify(code, testSecret) {
				t.Fatalf("expected malformed code %q to be rejected", code)
			}
		}
	})
}

func TestTOTPService_SetupPayload(t *testing.T) {
	svc := newTestTOTPService()

	payload, err := svc.SetupPayload(testSecret)
	if err != nil {
		t.Fatalf("SetupPayload() error = %v", err)
	}

	if payload.Secret != testSecret {
		t.Fatalf("expected payload secret %q, got %q", testSecret, payload.Secret)
	}
	if payload.Label != "Portfolio Admin" || payload.Issuer != "Portfolio" {
		t.Fatalf("unexpected label/issuer: %q / %q", payload.Label, payload.Issuer)
	}
	if payload.OtpauthURL == "" {
		t.Fatal("expected non-empty otpauth URL")
	}

	again, err := svc.SetupPayload(testSecret)
	if err != nil {
		t.Fatalf("SetupPayload() error = %v", err)
	}
	if *again != *payload {
		t.Fatalf("expected deterministic payload, got %+v then %+v", payload, again)
	}

	if _, err := svc.SetupPayload("not base32 at all!!!"); err == nil {
		t.Fatal("expected error for a non-base32 secret")
	}
}
