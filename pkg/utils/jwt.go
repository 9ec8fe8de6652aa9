package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret []byte
	jwtTTL    = 12 * time.Hour
)

// AdminClaims is the payload of an admin session token. The subject is the
// settings row the session was issued for.
type AdminClaims struct {
	AdminID uint `json:"adminID"`
	jwt.RegisteredClaims
}

// ConfigureJWT sets the signing secret and session lifetime. An empty secret
// or non-positive TTL leaves the current value untouched; the mandatory-secret
// check happens at config load, before this is called.
func ConfigureJWT(secret string, ttl time.Duration) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
	if ttl > 0 {
		jwtTTL = ttl
	}
}

func GenerateAdminToken(adminID uint) (string, error) {
	if len(jwtSecret) == 0 {
		return "", fmt.Errorf("session signing secret is not configured")
	}

	now := time.Now()
	claims := AdminClaims{
		AdminID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   strconv.FormatUint(uint64(adminID), 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ValidateAdminToken(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		if len(jwtSecret) == 0 {
			return nil, fmt.Errorf("session signing secret is not configured")
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
