// Package sequence issues the daily human-readable order numbers.
//
// Numbers are <DDMMYYYY><seq zero-padded to 6>, e.g. 25122025000007. The
// per-day sequence lives in a single counter row and is bumped with one
// atomic upsert, so concurrent order placements can never collide. Values
// are never reused: if the order save fails afterwards, the number is a
// gap, which is acceptable.
package sequence

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// dateKeyLayout renders a calendar date as DDMMYYYY
const dateKeyLayout = "02012006"

type Generator struct {
	db *gorm.DB
}

func NewGenerator(db *gorm.DB) *Generator {
	return &Generator{db: db}
}

// Next returns the next order number for the given calendar date.
// If the counter increment fails the caller must not create the order.
func (g *Generator) Next(today time.Time) (string, error) {
	key := today.Format(dateKeyLayout)

	var seq int64
	err := g.db.Raw(
		`INSERT INTO order_counters (date, seq) VALUES (?, 1)
		 ON CONFLICT(date) DO UPDATE SET seq = seq + 1
		 RETURNING seq`, key,
	).Scan(&seq).Error
	if err != nil {
		return "", fmt.Errorf("increment order counter for %s: %w", key, err)
	}

	return fmt.Sprintf("%s%06d", key, seq), nil
}
