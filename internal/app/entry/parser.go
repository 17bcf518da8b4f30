// Package entry turns typed bookkeeping lines into ledger batches and checks
// that they balance.
package entry

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/PabloGalante/frickbooks/internal/domain"
)

var (
	ErrMalformed = errors.New("malformed entry line")
	ErrEmpty     = errors.New("no entry lines")
)

// linePattern matches "Dr.John Smith$100" or "Cr. John Smith $200.50", case insensitive.
var linePattern = regexp.MustCompile(`(?i)^(dr|cr)\.?\s*(.*?)\s*\$([0-9]*\.?[0-9]{0,2})$`)

var (
	hundred  = decimal.NewFromInt(100)
	maxMinor = decimal.NewFromInt(math.MaxInt64)
)

// Parse converts the raw submission into a batch. Blank lines are skipped.
// A single bad line rejects the whole submission.
func Parse(raw string) (domain.Batch, error) {
	var batch domain.Batch

	for n, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		item, err := parseLine(trimmed)
		if err != nil {
			return nil, fmt.Errorf("line %d %q: %w", n+1, trimmed, err)
		}
		batch = append(batch, item)
	}

	if len(batch) == 0 {
		return nil, ErrEmpty
	}
	return batch, nil
}

func parseLine(line string) (domain.LineItem, error) {
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return domain.LineItem{}, ErrMalformed
	}

	amount, err := parseAmount(m[3])
	if err != nil {
		return domain.LineItem{}, err
	}

	return domain.LineItem{
		Payee:   m[2],
		Amount:  ToMinorUnits(amount),
		IsDebit: strings.EqualFold(m[1], "dr"),
	}, nil
}

func parseAmount(text string) (decimal.Decimal, error) {
	if !strings.ContainsAny(text, "0123456789") {
		return decimal.Zero, ErrMalformed
	}
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	text = strings.TrimSuffix(text, ".")

	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if d.Mul(hundred).Round(0).GreaterThan(maxMinor) {
		return decimal.Zero, fmt.Errorf("%w: amount $%s is too large", ErrMalformed, text)
	}
	return d, nil
}

// ToMinorUnits converts a dollar amount to cents, rounding half away from zero.
// The result must fit in an int64; Parse rejects amounts that do not.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}
