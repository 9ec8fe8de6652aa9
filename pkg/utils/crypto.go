package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

var secretCipherKey []byte

const secretCipherSalt = "portfolio-admin-secret-at-rest"

// ConfigureSecretCipher derives the AES-256 key used to seal the TOTP secret
// before it reaches the database. Keyed off the session secret so deployments
// need only one mandatory secret.
func ConfigureSecretCipher(secret string) {
	if secret == "" {
		return
	}
	reader := hkdf.New(
		sha256.New,
		[]byte(secret),
		[]byte(secretCipherSalt),
		[]byte("totp-secret-key"),
	)
	secretCipherKey = make([]byte, 32)
	if _, err := io.ReadFull(reader, secretCipherKey); err != nil {
		panic(fmt.Sprintf("failed to derive secret cipher key: %v", err))
	}
}

func SealSecret(plaintext string) (string, error) {
	if secretCipherKey == nil {
		return "", errors.New("secret cipher not configured")
	}

	block, err := aes.NewCipher(secretCipherKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func OpenSecret(sealed string) (string, error) {
	if secretCipherKey == nil {
		return "", errors.New("secret cipher not configured")
	}

	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(secretCipherKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(raw) < nonceSize {
		return "", errors.New("sealed value too short")
	}

	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// OpenSecretOrPlaintext tolerates rows written before encryption-at-rest was
// introduced: anything that does not open as a sealed value is returned as-is.
func OpenSecretOrPlaintext(value string) string {
	if value == "" {
		return ""
	}
	opened, err := OpenSecret(value)
	if err != nil {
		return value
	}
	return opened
}
