package account

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

// CardNumberLength is the number of digits in a freshly issued card number.
const CardNumberLength = 16

// maxCardAttempts bounds how many candidate numbers are tried before giving
// up with ErrCardSpaceExhausted.
const maxCardAttempts = 8

var ten = big.NewInt(10)

// GenerateCardNumber produces a numeric string of exactly length digits
// (leading zeros allowed) that no existing wallet holds. The check-then-act
// window is closed by the unique constraint at insert time; callers retry on
// ErrCardNumberTaken.
func GenerateCardNumber(ctx context.Context, repo Repository, length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("card number length must be positive, got %d", length)
	}

	for attempt := 0; attempt < maxCardAttempts; attempt++ {
		candidate, err := randomDigits(length)
		if err != nil {
			return "", fmt.Errorf("generate card number: %w", err)
		}

		taken, err := repo.CardNumberTaken(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check card number: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", ErrCardSpaceExhausted
}

func randomDigits(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
