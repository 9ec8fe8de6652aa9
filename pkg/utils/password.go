package utils

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the work factor the admin passcode was originally
// provisioned with; lowering it would silently weaken rotated passcodes.
const bcryptCost = 12

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
