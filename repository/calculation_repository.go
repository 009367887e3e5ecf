package repository

import (
	"context"

	"fincalc-agent/domain"
)

type CalculationRepository interface {
	Save(ctx context.Context, calc domain.Calculation) error
	List(ctx context.Context, kind domain.CalculationKind) ([]domain.Calculation, error)
}
