package usecase

import (
	"context"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/domain/repository"
)

// PlanUseCase catálogo público de planes.
type PlanUseCase struct {
	repo repository.PlanRepository
}

func NewPlanUseCase(repo repository.PlanRepository) *PlanUseCase {
	return &PlanUseCase{repo: repo}
}

// List devuelve los planes por precio ascendente.
func (uc *PlanUseCase) List(ctx context.Context) ([]dto.PlanResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlanResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.FromPlan(p))
	}
	return out, nil
}
