package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword encodes a plaintext password before it is stored. This is an
// explicit step in the user-creation workflow, not a persistence hook.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
