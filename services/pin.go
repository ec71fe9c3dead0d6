package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// PinGenerator returns a fresh delivery confirmation PIN.
type PinGenerator func() (string, error)

var pinSpace = big.NewInt(10000)

// RandomPin returns a uniformly random 4-digit numeric PIN, zero padded.
func RandomPin() (string, error) {
	n, err := rand.Int(rand.Reader, pinSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
