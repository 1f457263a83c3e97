package test

import "math/rand/v2"

const (
	loginAlphabet    = "abcdefghijklmnopqrstuvwxyz0123456789_"
	passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#%^&*"
	couponAlphabet   = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// RandomLogin returns a lowercase login that passes registration checks.
func RandomLogin() string {
	return "user_" + randomFrom(loginAlphabet, 6, 12)
}

// RandomPassword returns a password long enough for registration and short
// enough for bcrypt.
func RandomPassword() string {
	return randomFrom(passwordAlphabet, 12, 32)
}

// RandomCouponCode returns an upper-case promotional code.
func RandomCouponCode() string {
	return randomFrom(couponAlphabet, 6, 10)
}

func randomFrom(alphabet string, minLen, maxLen int) string {
	buf := make([]byte, minLen+rand.IntN(maxLen-minLen+1))
	for i := range buf {
		buf[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(buf)
}
