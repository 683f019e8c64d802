package service

import (
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	codePrefix = "TT-"
	codeLength = 5
)

// CodeGenerator returns a candidate booking code. Collisions are detected
// by the store and retried.
type CodeGenerator func() string

// NewBookingCode draws five base-36 characters from a random UUID.
func NewBookingCode() string {
	id := uuid.New()
	digits := strings.ToUpper(new(big.Int).SetBytes(id[:]).Text(36))
	for len(digits) < codeLength {
		digits = "0" + digits
	}
	return codePrefix + digits[len(digits)-codeLength:]
}
