package repositories

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// DisplayIDGenerator produces human-facing student codes of the form
// STU<year><5 digits>. Codes are random and may repeat; the store checks
// them against live records.
type DisplayIDGenerator struct {
	Now  func() time.Time
	IntN func(n int) int
}

// NewDisplayIDGenerator returns a generator using the wall clock.
func NewDisplayIDGenerator() *DisplayIDGenerator {
	return &DisplayIDGenerator{Now: time.Now, IntN: rand.IntN}
}

// Next returns a new display ID.
func (g *DisplayIDGenerator) Next() string {
	return fmt.Sprintf("STU%d%05d", g.Now().Year(), 10000+g.IntN(90000))
}
