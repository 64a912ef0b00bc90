package utils

import (
	"crypto/rand"
	"math/big"
)

const alphanumerics = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString returns a random alphanumeric string of the given length,
// used for slug disambiguation suffixes.
func RandomString(length int) string {
	out := make([]byte, length)
	max := big.NewInt(int64(len(alphanumerics)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			panic(err)
		}
		out[i] = alphanumerics[n.Int64()]
	}
	return string(out)
}

// RandomOtpCode returns a 6-digit one-time verification code.
func RandomOtpCode() int {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		panic(err)
	}
	return int(n.Int64()) + 100000
}
