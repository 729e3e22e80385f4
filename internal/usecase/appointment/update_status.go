package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/lavarapido/wash-scheduler/internal/audit"
	domain "github.com/lavarapido/wash-scheduler/internal/domain/appointment"
	"github.com/lavarapido/wash-scheduler/internal/events"
	"github.com/lavarapido/wash-scheduler/internal/httperr"
	"github.com/lavarapido/wash-scheduler/internal/models"
	"github.com/lavarapido/wash-scheduler/internal/timezone"
)

type UpdateStatus struct {
	schedule domain.Schedule
	repo     domain.Repository
	audit    *audit.Dispatcher
	events   events.Publisher
}

func NewUpdateStatus(
	schedule domain.Schedule,
	repo domain.Repository,
	audit *audit.Dispatcher,
	events events.Publisher,
) *UpdateStatus {
	return &UpdateStatus{
		schedule: schedule,
		repo:     repo,
		audit:    audit,
		events:   events,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	caller domain.Caller,
	id uuid.UUID,
	newStatus domain.Status,
) (*models.Appointment, error) {

	if !domain.IsValidStatus(newStatus) {
		return nil, httperr.ErrValidation("invalid_status", "Status inválido. Valores permitidos: scheduled, cancelled, completed.")
	}

	ap, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.AssertOwnershipOrAdmin(ap, caller); err != nil {
		return nil, err
	}

	if !domain.CanChangeStatus(caller.Role, domain.Status(ap.Status), newStatus) {
		msg := "Transição não permitida: clientes só podem cancelar agendamentos próprios ainda agendados."
		if caller.IsAdmin() {
			msg = "Transição não permitida: admins podem cancelar ou finalizar agendamentos agendados."
		}
		return nil, httperr.ErrConflict("invalid_transition", msg)
	}

	now := timezone.NowIn(uc.schedule.Timezone)
	if err := domain.ApplyStatus(ap, newStatus, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &caller.ID,
		Action:   "appointment_status_" + string(newStatus),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})
	uc.events.Publish(ctx, events.FromAppointment("appointment.status_changed", ap))

	return ap, nil
}
