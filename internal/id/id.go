package id

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTaxID is returned for tax IDs that are empty or contain letters.
var ErrInvalidTaxID = errors.New("invalid tax ID")

// NormalizeTaxID strips the usual separators from a tax ID.
// "123.456.789-00" -> "12345678900"
func NormalizeTaxID(raw string) (string, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '/' || r == ' ':
			// separator
		default:
			return "", fmt.Errorf("%w: %q", ErrInvalidTaxID, raw)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTaxID, raw)
	}
	return b.String(), nil
}

// FormatAccountRef returns a reference like "0001-000042".
func FormatAccountRef(branch string, number int) string {
	return fmt.Sprintf("%s-%06d", branch, number)
}

// ParseAccountRef parses "0001-000042" into branch and number.
func ParseAccountRef(ref string) (branch string, number int, err error) {
	parts := strings.SplitN(ref, "-", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", 0, fmt.Errorf("invalid account reference: %q", ref)
	}

	number, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, fmt.Errorf("invalid number in account reference %q: %w", ref, err)
	}
	if number <= 0 {
		return "", 0, fmt.Errorf("invalid number in account reference %q", ref)
	}
	return parts[0], number, nil
}
