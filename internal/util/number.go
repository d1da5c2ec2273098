package util

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	reThousandsDot   = regexp.MustCompile(`^-?\d{1,3}(?:\.\d{3})+$`)
	reThousandsComma = regexp.MustCompile(`^-?\d{1,3}(?:,\d{3})+$`)
	reDecimal        = regexp.MustCompile(`^[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?$`)
)

// ErrNotNumber is returned by ParseNumber for tokens that are not numbers.
var ErrNotNumber = errors.New("not a number")

// ParseNumber parses numbers written the way they show up in spreadsheets
// and exports: "1 000", "1.000", "1,000", "1,5" and plain "1.5".
func ParseNumber(token string) (float64, error) {
	norm := normalizeNumericToken(token)
	if !reDecimal.MatchString(norm) {
		return 0, ErrNotNumber
	}
	v, err := strconv.ParseFloat(norm, 64)
	if err != nil {
		return 0, ErrNotNumber
	}
	return v, nil
}

// IsNumber reports whether ParseNumber accepts token.
func IsNumber(token string) bool {
	_, err := ParseNumber(token)
	return err == nil
}

func normalizeNumericToken(token string) string {
	compact := strings.ReplaceAll(token, "\u00A0", "")
	compact = strings.ReplaceAll(strings.TrimSpace(compact), " ", "")
	if reThousandsDot.MatchString(compact) {
		return strings.ReplaceAll(compact, ".", "")
	}
	if reThousandsComma.MatchString(compact) {
		return strings.ReplaceAll(compact, ",", "")
	}
	if strings.Contains(compact, ",") && !strings.Contains(compact, ".") {
		return strings.ReplaceAll(compact, ",", ".")
	}
	return compact
}
