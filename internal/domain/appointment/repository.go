package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/lavarapido/wash-scheduler/internal/models"
)

type ListFilters struct {
	Status   []string
	DateFrom string
	DateTo   string
	UserID   *uuid.UUID
	Page     int
	PageSize int
	IsAdmin  bool
}

type Repository interface {
	// -------- Service catalog --------
	GetActiveService(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Service, error)

	// -------- Appointment (read) --------
	FindByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	// OccupancyByTime retorna, por rótulo de horário, quantos
	// agendamentos ativos existem na data.
	OccupancyByTime(
		ctx context.Context,
		date string,
	) (map[string]int, error)

	List(
		ctx context.Context,
		filters ListFilters,
	) ([]models.Appointment, int64, error)

	// -------- Appointment (slot-sensitive writes) --------
	// Cada método executa checagem de capacidade/duplicidade e a
	// escrita como unidade atômica frente a reservas concorrentes.

	CreateScheduled(
		ctx context.Context,
		ap *models.Appointment,
		capacity int,
	) error

	UpdateRescheduled(
		ctx context.Context,
		ap *models.Appointment,
		capacity int,
	) error

	UpdateEdited(
		ctx context.Context,
		ap *models.Appointment,
		capacity int,
		slotChanged bool,
	) error

	// -------- Appointment (plain writes) --------
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	Delete(
		ctx context.Context,
		id uuid.UUID,
	) error
}
