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

type UpdateInput struct {
	VehicleModel string
	VehicleColor string
	Plate        string
	ServiceID    uuid.UUID
	Date         string
	Time         string
	Notes        string
}

type UpdateAppointment struct {
	schedule domain.Schedule
	repo     domain.Repository
	audit    *audit.Dispatcher
	events   events.Publisher
}

func NewUpdateAppointment(
	schedule domain.Schedule,
	repo domain.Repository,
	audit *audit.Dispatcher,
	events events.Publisher,
) *UpdateAppointment {
	return &UpdateAppointment{
		schedule: schedule,
		repo:     repo,
		audit:    audit,
		events:   events,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	caller domain.Caller,
	id uuid.UUID,
	in UpdateInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.AssertOwnershipOrAdmin(ap, caller); err != nil {
		return nil, err
	}

	if ap.Status != string(domain.StatusScheduled) {
		return nil, httperr.ErrConflict("invalid_state", "Só é possível editar agendamentos com status 'scheduled'.")
	}

	if in.VehicleModel == "" {
		return nil, httperr.ErrValidation("missing_field", "Campo obrigatório: vehicle_model")
	}
	if !validators.IsDate(in.Date) {
		return nil, httperr.ErrValidation("invalid_date", "date deve ser YYYY-MM-DD")
	}
	if !validators.IsTimeOfDay(in.Time) {
		return nil, httperr.ErrValidation("invalid_time", "time deve ser HH:MM")
	}

	plate := domain.SanitizePlate(in.Plate)
	if !domain.IsValidPlate(plate) {
		return nil, httperr.ErrValidation("invalid_plate", "Placa inválida (formatos ABC1234 ou ABC1D23).")
	}
	if in.ServiceID == uuid.Nil {
		return nil, httperr.ErrValidation("missing_field", "Campo obrigatório: service_id")
	}

	now := timezone.NowIn(uc.schedule.Timezone)
	if uc.schedule.IsPast(in.Date, in.Time, now) {
		return nil, httperr.ErrValidation("past_datetime", "Não é possível agendar no passado.")
	}
	if !uc.schedule.IsValidSlot(in.Time) {
		return nil, httperr.ErrValidation("invalid_slot", "Horário fora do expediente ou inválido para a grade configurada.")
	}

	svc, err := uc.repo.GetActiveService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	slotChanged := ap.Date != in.Date || ap.Time != in.Time

	ap.VehicleModel = in.VehicleModel
	ap.VehicleColor = in.VehicleColor
	ap.Plate = plate
	ap.ServiceID = svc.ID
	ap.Date = in.Date
	ap.Time = in.Time
	ap.Notes = in.Notes

	// Mudou de slot: refaz capacidade e duplicidades excluindo a
	// própria linha. Slot igual: edição pura de campos.
	if err := withRetry(func() error {
		return uc.repo.UpdateEdited(ctx, ap, uc.schedule.Capacity, slotChanged)
	}); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &caller.ID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})
	uc.events.Publish(ctx, events.FromAppointment("appointment.updated", ap))

	return ap, nil
}
