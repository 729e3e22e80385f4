package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/lavarapido/wash-scheduler/internal/domain/appointment"
	"github.com/lavarapido/wash-scheduler/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	caller domain.Caller,
	id uuid.UUID,
) (*models.Appointment, error) {

	ap, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.AssertOwnershipOrAdmin(ap, caller); err != nil {
		return nil, err
	}

	return ap, nil
}
