package appointment

import (
	"context"

	domain "github.com/lavarapido/wash-scheduler/internal/domain/appointment"
	"github.com/lavarapido/wash-scheduler/internal/httperr"
	"github.com/lavarapido/wash-scheduler/internal/validators"
)

type GetDailySlots struct {
	schedule domain.Schedule
	repo     domain.Repository
}

func NewGetDailySlots(schedule domain.Schedule, repo domain.Repository) *GetDailySlots {
	return &GetDailySlots{schedule: schedule, repo: repo}
}

// Execute projeta a ocupação corrente sobre a grade completa do dia.
// Leitura pura: sem lock, sem cache.
func (uc *GetDailySlots) Execute(
	ctx context.Context,
	date string,
) (domain.DailySlots, error) {

	if !validators.IsDate(date) {
		return domain.DailySlots{}, httperr.ErrValidation("invalid_date", "date deve ser YYYY-MM-DD")
	}

	occupied, err := uc.repo.OccupancyByTime(ctx, date)
	if err != nil {
		return domain.DailySlots{}, err
	}

	return domain.BuildDailySlots(uc.schedule, date, occupied), nil
}
