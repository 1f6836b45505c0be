package repos

import (
	"context"

	"gorm.io/gorm"
)

// Conn is what a repository needs from its owning unit of work: the current
// database handle (the open transaction when one exists) for reads, and a
// change set to stage writes into. Staged writes become durable only when the
// unit of work flushes them in SaveChanges.
type Conn interface {
	DB(ctx context.Context) *gorm.DB
	Stage(change Change)
}

// Change is one staged mutation. Op names the mutation for error wrapping;
// Apply runs it inside the flushing transaction and reports rows affected.
type Change struct {
	Op    string
	Apply func(tx *gorm.DB) (int64, error)
}

// Page bounds list queries.
type Page struct {
	Offset int
	Limit  int
}

const defaultPageLimit = 50

func (p Page) normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 || p.Limit > 200 {
		p.Limit = defaultPageLimit
	}
	return p
}
