package services

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

const (
	otpMin = 100000
	otpMax = 999999
)

// generateOTP draws a uniform code in [100000, 999999] so the string is
// always exactly six digits, and pairs it with its expiry timestamp.
func generateOTP(ttl time.Duration) (string, time.Time, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", time.Time{}, err
	}
	code := strconv.FormatInt(n.Int64()+otpMin, 10)
	return code, time.Now().Add(ttl), nil
}
