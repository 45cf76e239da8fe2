package returns

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/returnhub/backend/internal/domain/shared"
)

// NumberPrefix is the literal prefix of every display number
const NumberPrefix = "RET-"

// numberWidth is the zero-padded width of the numeric part
const numberWidth = 6

// ErrInvalidNumber is returned by ParseNumber for any malformed display
// number. Callers surface it as NotFound so malformed and missing numbers
// are indistinguishable to the outside.
var ErrInvalidNumber = shared.NewDomainError("INVALID_RETURN_NUMBER", "Invalid return number")

// FormatNumber renders a raw sequence value as its display form,
// e.g. 42 -> "RET-000042". Values wider than six digits are rendered
// unpadded, keeping the mapping injective.
func FormatNumber(n int64) string {
	return fmt.Sprintf("%s%0*d", NumberPrefix, numberWidth, n)
}

// ParseNumber is the inverse of FormatNumber. It rejects a wrong prefix,
// non-digit characters, and non-canonical padding (the numeric part is
// exactly six digits, or longer with no leading zero).
func ParseNumber(display string) (int64, error) {
	digits, ok := strings.CutPrefix(display, NumberPrefix)
	if !ok {
		return 0, ErrInvalidNumber
	}
	if len(digits) < numberWidth {
		return 0, ErrInvalidNumber
	}
	if len(digits) > numberWidth && digits[0] == '0' {
		return 0, ErrInvalidNumber
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, ErrInvalidNumber
		}
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, ErrInvalidNumber
	}
	if n <= 0 {
		return 0, ErrInvalidNumber
	}
	return n, nil
}
