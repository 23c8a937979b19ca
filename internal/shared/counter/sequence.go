package counter

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	ScopeQuoteRefNo        = "quote_ref_no"
	orderNumberScopePrefix = "order_number:"

	// SequenceWidth is the minimum zero-padded width. Values past 999 widen.
	SequenceWidth = 3
)

func FormatSequence(n int64) string {
	return fmt.Sprintf("%0*d", SequenceWidth, n)
}

// NextQuoteRefNo allocates the next global quote reference: 001, 002, ...
func NextQuoteRefNo(ctx context.Context, repo Repository) (string, error) {
	n, err := repo.GetNextValue(ctx, ScopeQuoteRefNo)
	if err != nil {
		return "", err
	}
	return FormatSequence(n), nil
}

// OrderNumberPrefix builds COMPANY-YYMMDD-CUSTOMER.
func OrderNumberPrefix(companyName, customerDisplayName string, at time.Time) string {
	return strings.ToUpper(strings.TrimSpace(companyName)) +
		"-" + at.Format("060102") +
		"-" + NormalizeSegment(customerDisplayName)
}

// NormalizeSegment uppercases s and collapses whitespace and hyphen runs into single hyphens.
func NormalizeSegment(s string) string {
	fields := strings.FieldsFunc(strings.ToUpper(s), func(r rune) bool {
		return r == '-' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	return strings.Join(fields, "-")
}

// NextOrderNumber allocates PREFIX-NNN where NNN counts from 000 per exact prefix.
func NextOrderNumber(ctx context.Context, repo Repository, prefix string) (string, error) {
	n, err := repo.GetNextValue(ctx, orderNumberScopePrefix+prefix)
	if err != nil {
		return "", err
	}
	return prefix + "-" + FormatSequence(n-1), nil
}

// ReserveOrderNumber keeps generated numbers clear of a caller-supplied one.
// For PREFIX-NNN the PREFIX counter is raised so the next allocation is at
// least NNN+1. Numbers without a numeric tail reserve nothing.
func ReserveOrderNumber(ctx context.Context, repo Repository, number string) error {
	prefix, tail, ok := SplitOrderNumber(number)
	if !ok {
		return nil
	}
	// NextOrderNumber hands out value-1, so NNN+1 needs last_value NNN+1.
	return repo.RaiseValue(ctx, OrderNumberScope(prefix), tail+1)
}

// SplitOrderNumber splits PREFIX-NNN at the last hyphen.
func SplitOrderNumber(number string) (string, int64, bool) {
	i := strings.LastIndex(number, "-")
	if i <= 0 || i == len(number)-1 {
		return "", 0, false
	}
	digits := number[i+1:]
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", 0, false
		}
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n == math.MaxInt64 {
		return "", 0, false
	}
	return number[:i], n, true
}

func OrderNumberScope(prefix string) string {
	return orderNumberScopePrefix + prefix
}
