package verification

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// generateVerificationCode produces a zero-padded numeric code of the given
// length from a cryptographic source. "007123" is a valid 6-digit code.
func generateVerificationCode(length int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < length; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%0*d", length, n), nil
}

// generateDistinctCode produces a code different from the previous one, so a
// resend always invalidates the code it replaces.
func generateDistinctCode(length int, previous string) (string, error) {
	for {
		code, err := generateVerificationCode(length)
		if err != nil {
			return "", err
		}
		if code != previous {
			return code, nil
		}
	}
}
