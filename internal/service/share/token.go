package share

import (
	"crypto/rand"
	"encoding/base64"
)

const defaultTokenBytes = 32

// generateToken returns n random bytes encoded as unpadded base64url.
func generateToken(n int) (string, error) {
	if n <= 0 {
		n = defaultTokenBytes
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
