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
	"github.com/lavarapido/wash-scheduler/internal/validators"
)

type RescheduleInput struct {
	Date string
	Time string
}

type RescheduleAppointment struct {
	schedule domain.Schedule
	repo     domain.Repository
	audit    *audit.Dispatcher
	events   events.Publisher
}

func NewRescheduleAppointment(
	schedule domain.Schedule,
	repo domain.Repository,
	audit *audit.Dispatcher,
	events events.Publisher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		schedule: schedule,
		repo:     repo,
		audit:    audit,
		events:   events,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	caller domain.Caller,
	id uuid.UUID,
	in RescheduleInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.AssertOwnershipOrAdmin(ap, caller); err != nil {
		return nil, err
	}

	if ap.Status != string(domain.StatusScheduled) {
		return nil, httperr.ErrConflict("invalid_state", "Só é possível reagendar agendamentos com status 'scheduled'.")
	}

	if !validators.IsDate(in.Date) {
		return nil, httperr.ErrValidation("invalid_date", "date deve ser YYYY-MM-DD")
	}
	if !validators.IsTimeOfDay(in.Time) {
		return nil, httperr.ErrValidation("invalid_time", "time deve ser HH:MM")
	}

	now := timezone.NowIn(uc.schedule.Timezone)
	if uc.schedule.IsPast(in.Date, in.Time, now) {
		return nil, httperr.ErrValidation("past_datetime", "Não é possível reagendar para o passado.")
	}
	if !uc.schedule.IsValidSlot(in.Time) {
		return nil, httperr.ErrValidation("invalid_slot", "Horário fora do expediente ou inválido para a grade configurada.")
	}

	ap.Date = in.Date
	ap.Time = in.Time

	// Capacidade no novo slot exclui a própria linha que está vagando.
	if err := withRetry(func() error {
		return uc.repo.UpdateRescheduled(ctx, ap, uc.schedule.Capacity)
	}); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &caller.ID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})
	uc.events.Publish(ctx, events.FromAppointment("appointment.rescheduled", ap))

	return ap, nil
}
