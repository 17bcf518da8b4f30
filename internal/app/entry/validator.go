package entry

import (
	"errors"
	"fmt"

	"github.com/PabloGalante/frickbooks/internal/domain"
)

var (
	ErrNegativeAmount = errors.New("amounts must be positive")
	ErrUnbalanced     = errors.New("debits and credits must balance")
)

// Validate checks that a batch can be submitted: it has items, no amount is
// negative and debits equal credits exactly.
func Validate(batch domain.Batch) error {
	if len(batch) == 0 {
		return ErrEmpty
	}

	for i, item := range batch {
		if item.Amount < 0 {
			return fmt.Errorf("item %d %q: %w", i+1, item.String(), ErrNegativeAmount)
		}
	}

	if sum := batch.SignedSum(); !sum.IsZero() {
		return fmt.Errorf("off by $%s: %w", domain.FormatMinor(sum.Abs()), ErrUnbalanced)
	}
	return nil
}
