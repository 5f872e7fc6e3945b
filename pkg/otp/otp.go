// Package otp generates short-lived numeric passcodes for email verification.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DefaultLength is the number of digits in a generated passcode.
const DefaultLength = 6

var ten = big.NewInt(10)

// Generate returns a uniformly random numeric string of the given length.
// Leading zeros are permitted. A length of zero or less falls back to
// DefaultLength. Digits come from crypto/rand since the passcode guards
// an authentication factor.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("failed to generate passcode: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}

	return string(digits), nil
}
