package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"fincalc-agent/domain"
)

// CalculationRepositoryMemory is an in-memory implementation of CalculationRepository.
// It keeps at most limit records, dropping the oldest first.
type CalculationRepositoryMemory struct {
	mu    sync.RWMutex
	limit int
	data  []domain.Calculation
}

// NewCalculationRepositoryMemory creates a new in-memory calculation log.
// A limit of zero or less keeps every record.
func NewCalculationRepositoryMemory(limit int) *CalculationRepositoryMemory {
	return &CalculationRepositoryMemory{
		limit: limit,
		data:  []domain.Calculation{},
	}
}

// Save stores the calculation, filling in ID and CreatedAt when empty.
func (r *CalculationRepositoryMemory) Save(
	ctx context.Context,
	calc domain.Calculation,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if calc.ID == "" {
		calc.ID = uuid.NewString()
	}
	if calc.CreatedAt.IsZero() {
		calc.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, calc)
	if r.limit > 0 && len(r.data) > r.limit {
		r.data = append([]domain.Calculation(nil), r.data[len(r.data)-r.limit:]...)
	}
	return nil
}

// List returns stored calculations of the given kind, oldest first. An empty
// kind returns everything.
func (r *CalculationRepositoryMemory) List(
	ctx context.Context,
	kind domain.CalculationKind,
) ([]domain.Calculation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Calculation, 0, len(r.data))
	for _, calc := range r.data {
		if kind == "" || calc.Kind == kind {
			out = append(out, calc)
		}
	}
	return out, nil
}
