package conversation

import "github.com/PabloGalante/frickbooks/internal/domain"

// SetParser swaps the entry parser so tests can hand the validator batches
// the real parser never produces.
func SetParser(c *Controller, parse func(string) (domain.Batch, error)) {
	c.parse = parse
}
