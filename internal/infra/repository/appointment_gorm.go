package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/lavarapido/wash-scheduler/internal/domain/appointment"
	"github.com/lavarapido/wash-scheduler/internal/httperr"
	"github.com/lavarapido/wash-scheduler/internal/models"
)

// Apenas "scheduled" ocupa vaga: cancelados e finalizados liberam o slot.
const activeStatus = string(domain.StatusScheduled)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Service catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetActiveService(
	ctx context.Context,
	id uuid.UUID,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&svc).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrValidation("service_not_found", "Serviço não encontrado ou inativo.")
		}
		return nil, mapStorageError(err)
	}
	return &svc, nil
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) FindByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		First(&ap, "id = ?", id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("appointment_not_found", "Agendamento não encontrado.")
		}
		return nil, mapStorageError(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) OccupancyByTime(
	ctx context.Context,
	date string,
) (map[string]int, error) {

	var rows []struct {
		Slot  string
		Total int
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("time AS slot, COUNT(*) AS total").
		Where("date = ? AND status = ?", date, activeStatus).
		Group("time").
		Scan(&rows).Error; err != nil {
		return nil, mapStorageError(err)
	}

	occupied := make(map[string]int, len(rows))
	for _, row := range rows {
		occupied[row.Slot] = row.Total
	}
	return occupied, nil
}

func (r *AppointmentGormRepository) List(
	ctx context.Context,
	filters domain.ListFilters,
) ([]models.Appointment, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})

	if filters.UserID != nil {
		q = q.Where("user_id = ?", *filters.UserID)
	}
	if filters.DateFrom != "" {
		q = q.Where("date >= ?", filters.DateFrom)
	}
	if filters.DateTo != "" {
		q = q.Where("date <= ?", filters.DateTo)
	}
	if len(filters.Status) > 0 {
		q = q.Where("status IN ?", filters.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, mapStorageError(err)
	}

	q = q.Preload("Service")
	if filters.IsAdmin {
		q = q.Preload("User")
	}

	offset := (filters.Page - 1) * filters.PageSize

	var apps []models.Appointment
	if err := q.
		Order("date DESC, time DESC").
		Limit(filters.PageSize).
		Offset(offset).
		Find(&apps).Error; err != nil {
		return nil, 0, mapStorageError(err)
	}

	return apps, total, nil
}

// --------------------------------------------------
// Appointment (slot-sensitive writes)
// --------------------------------------------------
// Checagem de capacidade/duplicidade e escrita rodam na mesma transação,
// serializadas por um advisory lock transacional por (date, time): duas
// reservas concorrentes do mesmo slot nunca passam juntas pela contagem.

func (r *AppointmentGormRepository) CreateScheduled(
	ctx context.Context,
	ap *models.Appointment,
	capacity int,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockSlot(tx, ap.Date, ap.Time); err != nil {
			return err
		}

		if err := assertSlotHasRoom(tx, ap.Date, ap.Time, capacity, uuid.Nil); err != nil {
			return err
		}

		var own int64
		if err := tx.Model(&models.Appointment{}).
			Where("user_id = ? AND date = ? AND time = ? AND status = ?",
				ap.UserID, ap.Date, ap.Time, activeStatus).
			Count(&own).Error; err != nil {
			return err
		}
		if own > 0 {
			return httperr.ErrConflict("duplicate_owner_slot", "Você já possui um agendamento ativo neste horário.")
		}

		var plates int64
		if err := tx.Model(&models.Appointment{}).
			Where("plate = ? AND date = ? AND status = ?",
				ap.Plate, ap.Date, activeStatus).
			Count(&plates).Error; err != nil {
			return err
		}
		if plates > 0 {
			return httperr.ErrConflict("duplicate_plate_day", "Esta placa já possui agendamento neste dia.")
		}

		return tx.Create(ap).Error
	})

	return mapStorageError(err)
}

func (r *AppointmentGormRepository) UpdateRescheduled(
	ctx context.Context,
	ap *models.Appointment,
	capacity int,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockSlot(tx, ap.Date, ap.Time); err != nil {
			return err
		}

		if err := assertSlotHasRoom(tx, ap.Date, ap.Time, capacity, ap.ID); err != nil {
			return err
		}

		return tx.Save(ap).Error
	})

	return mapStorageError(err)
}

func (r *AppointmentGormRepository) UpdateEdited(
	ctx context.Context,
	ap *models.Appointment,
	capacity int,
	slotChanged bool,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if slotChanged {
			if err := lockSlot(tx, ap.Date, ap.Time); err != nil {
				return err
			}

			if err := assertSlotHasRoom(tx, ap.Date, ap.Time, capacity, ap.ID); err != nil {
				return err
			}

			var own int64
			if err := tx.Model(&models.Appointment{}).
				Where("user_id = ? AND date = ? AND time = ? AND status = ? AND id != ?",
					ap.UserID, ap.Date, ap.Time, activeStatus, ap.ID).
				Count(&own).Error; err != nil {
				return err
			}
			if own > 0 {
				return httperr.ErrConflict("duplicate_owner_slot", "Você já possui um agendamento ativo neste horário.")
			}

			var plates int64
			if err := tx.Model(&models.Appointment{}).
				Where("plate = ? AND date = ? AND status = ? AND id != ?",
					ap.Plate, ap.Date, activeStatus, ap.ID).
				Count(&plates).Error; err != nil {
				return err
			}
			if plates > 0 {
				return httperr.ErrConflict("duplicate_plate_day", "Esta placa já possui agendamento neste dia.")
			}
		}

		return tx.Save(ap).Error
	})

	return mapStorageError(err)
}

// --------------------------------------------------
// Appointment (plain writes)
// --------------------------------------------------

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return mapStorageError(r.db.WithContext(ctx).Save(ap).Error)
}

func (r *AppointmentGormRepository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id)
	if res.Error != nil {
		return mapStorageError(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound("appointment_not_found", "Agendamento não encontrado.")
	}
	return nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

// lockSlot serializa o slot (date, time) dentro da transação corrente.
// Fora do Postgres (sqlite nos testes) o lock de escrita do próprio
// banco já serializa as transações.
func lockSlot(tx *gorm.DB, date, hm string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(? || ?))", date, hm).Error
}

// assertSlotHasRoom conta agendamentos ativos no slot, excluindo a
// própria linha em reagendamento/edição.
func assertSlotHasRoom(tx *gorm.DB, date, hm string, capacity int, exclude uuid.UUID) error {
	q := tx.Model(&models.Appointment{}).
		Where("date = ? AND time = ? AND status = ?", date, hm, activeStatus)
	if exclude != uuid.Nil {
		q = q.Where("id != ?", exclude)
	}

	var used int64
	if err := q.Count(&used).Error; err != nil {
		return err
	}
	if used >= int64(capacity) {
		return httperr.ErrConflict("slot_full", "Horário esgotado.")
	}
	return nil
}

// mapStorageError preserva erros de negócio e converte falhas
// transitórias do Postgres em erro 503 repetível.
func mapStorageError(err error) error {
	if err == nil {
		return nil
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03": // serialization, deadlock, lock_not_available
			return httperr.ErrUnavailable("storage_conflict", "Conflito temporário no banco, tente novamente.")
		}
	}

	return err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
