package auth

import "golang.org/x/crypto/bcrypt"

// HashPasskey hashes a plaintext passkey with the configured cost.
func HashPasskey(passkey string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(passkey), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePasskey verifies a passkey against its stored hash in constant time.
func ComparePasskey(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
