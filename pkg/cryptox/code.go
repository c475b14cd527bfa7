package cryptox

import (
	"crypto/rand"
	"math/big"

	"github.com/pquerna/otp"
)

// CodeDigits is the width of emailed verification codes.
const CodeDigits = otp.DigitsSix

const (
	codeMin = 100000
	codeMax = 999999
)

// NewNumericCode returns a verification code drawn uniformly from
// 100000..999999, so it never has a leading zero.
func NewNumericCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", err
	}
	return CodeDigits.Format(int32(n.Int64() + codeMin)), nil // #nosec G115 -- < 10^6
}

// IsNumericCode reports whether s has the shape of a verification code.
func IsNumericCode(s string) bool {
	if len(s) != CodeDigits.Length() {
		return false
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
