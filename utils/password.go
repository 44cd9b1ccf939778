package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted one-way hash; hashing the same
// plaintext twice yields different credentials.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether plaintext matches the stored
// credential. It never returns an error on mismatch, just false.
func CheckPassword(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
