package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/lavarapido/wash-scheduler/internal/audit"
	domain "github.com/lavarapido/wash-scheduler/internal/domain/appointment"
	"github.com/lavarapido/wash-scheduler/internal/events"
	"github.com/lavarapido/wash-scheduler/internal/httperr"
)

type DeleteAppointment struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	events events.Publisher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	events events.Publisher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:   repo,
		audit:  audit,
		events: events,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	caller domain.Caller,
	id uuid.UUID,
) error {

	ap, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.AssertOwnershipOrAdmin(ap, caller); err != nil {
		return err
	}

	// Agendamento ativo se cancela, não se exclui.
	if !domain.CanDelete(caller.Role, domain.Status(ap.Status)) {
		msg := "Só é possível excluir agendamentos cancelados."
		if caller.IsAdmin() {
			msg = "Só é possível excluir agendamentos cancelados ou finalizados."
		}
		return httperr.ErrConflict("invalid_state", msg)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &caller.ID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})
	uc.events.Publish(ctx, events.FromAppointment("appointment.deleted", ap))

	return nil
}
