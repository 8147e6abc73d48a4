package hash

import "golang.org/x/crypto/bcrypt"

// Cost matches the original deployment's fixed bcrypt work factor.
const Cost = 8

func HashPassword(password string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// CheckPassword delegates to bcrypt's constant-time comparison.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
