package services

import (
	"encoding/base32"
	"strings"

	"github.com/pquerna/otp/totp"
)

// TOTPService wraps time-based one-time password generation and validation
// for the admin authenticator. Label and issuer are what enrollment apps
// display for the account.
type TOTPService struct {
	Label  string
	Issuer string
}

func NewTOTPService(label, issuer string) *TOTPService {
	return &TOTPService{Label: label, Issuer: issuer}
}

// TOTPSetupPayload carries everything an authenticator app needs to enroll
// the secret. Returned to the admin, never stored.
type TOTPSetupPayload struct {
	Secret     string `json:"secret"`
	OtpauthURL string `json:"otpauthUrl"`
	Label      string `json:"label"`
	Issuer     string `json:"issuer"`
}

// GenerateSecret creates a fresh random secret, base32-encoded.
func (s *TOTPService) GenerateSecret() (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: s.Label,
	})
	if err != nil {
		return "", err
	}
	return key.Secret(), nil
}

// Verify checks a 6-digit code against the secret using the standard
// 30-second step with one step of clock-skew tolerance either way.
// Malformed or empty codes simply fail validation.
func (s *TOTPService) Verify(code, secret string) bool {
	return totp.Validate(code, secret)
}

// SetupPayload builds the provisioning payload for an existing secret. The
// encoding is deterministic: the same secret always yields the same URL.
func (s *TOTPService) SetupPayload(secret string) (*TOTPSetupPayload, error) {
	raw, err := decodeBase32Secret(secret)
	if err != nil {
		return nil, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: s.Label,
		Secret:      raw,
	})
	if err != nil {
		return nil, err
	}

	return &TOTPSetupPayload{
		Secret:     key.Secret(),
		OtpauthURL: key.URL(),
		Label:      s.Label,
		Issuer:     s.Issuer,
	}, nil
}

func decodeBase32Secret(secret string) ([]byte, error) {
	normalized := strings.ToUpper(strings.TrimRight(strings.TrimSpace(secret), "="))
	return base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(normalized)
}
