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

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	VehicleModel string
	VehicleColor string
	Plate        string
	ServiceID    uuid.UUID
	Date         string
	Time         string
	Notes        string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	schedule domain.Schedule
	repo     domain.Repository
	audit    *audit.Dispatcher
	events   events.Publisher
}

func NewCreateAppointment(
	schedule domain.Schedule,
	repo domain.Repository,
	audit *audit.Dispatcher,
	events events.Publisher,
) *CreateAppointment {
	return &CreateAppointment{
		schedule: schedule,
		repo:     repo,
		audit:    audit,
		events:   events,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	caller domain.Caller,
	in CreateInput,
) (*models.Appointment, error) {

	// 1. Campos e formatos
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

	// 2. Horário no passado
	now := timezone.NowIn(uc.schedule.Timezone)
	if uc.schedule.IsPast(in.Date, in.Time, now) {
		return nil, httperr.ErrValidation("past_datetime", "Não é possível agendar no passado.")
	}

	// 3. Pertencimento à grade do dia
	if !uc.schedule.IsValidSlot(in.Time) {
		return nil, httperr.ErrValidation("invalid_slot", "Horário fora do expediente ou inválido para a grade configurada.")
	}

	// 4. Serviço ativo
	svc, err := uc.repo.GetActiveService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		UserID:       caller.ID,
		ServiceID:    svc.ID,
		VehicleModel: in.VehicleModel,
		VehicleColor: in.VehicleColor,
		Plate:        plate,
		Date:         in.Date,
		Time:         in.Time,
		Notes:        in.Notes,
		Status:       string(domain.InitialStatus()),
	}

	// 5-8. Capacidade, duplicidades e insert como unidade atômica
	if err := withRetry(func() error {
		return uc.repo.CreateScheduled(ctx, ap, uc.schedule.Capacity)
	}); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &caller.ID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})
	uc.events.Publish(ctx, events.FromAppointment("appointment.created", ap))

	return ap, nil
}
