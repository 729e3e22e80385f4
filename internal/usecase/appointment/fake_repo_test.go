package appointment

import (
	"context"
	"sync"

	"github.com/google/uuid"

	domain "github.com/lavarapido/wash-scheduler/internal/domain/appointment"
	"github.com/lavarapido/wash-scheduler/internal/httperr"
	"github.com/lavarapido/wash-scheduler/internal/models"
)

// fakeRepo reproduz em memória o contrato do repositório real: cada
// escrita sensível a slot checa capacidade e duplicidades sob o mesmo
// mutex que faz o insert, então reservas concorrentes se serializam
// como no banco.
type fakeRepo struct {
	mu           sync.Mutex
	services     map[uuid.UUID]*models.Service
	appointments map[uuid.UUID]*models.Appointment

	failNextWith error // consumido na próxima escrita sensível a slot
	failCount    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:     make(map[uuid.UUID]*models.Service),
		appointments: make(map[uuid.UUID]*models.Appointment),
	}
}

func (f *fakeRepo) addService(svc *models.Service) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if svc.ID == uuid.Nil {
		svc.ID = uuid.New()
	}
	f.services[svc.ID] = svc
	return svc.ID
}

func (f *fakeRepo) seed(ap *models.Appointment) *models.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	cp := *ap
	f.appointments[ap.ID] = &cp
	return ap
}

func (f *fakeRepo) get(id uuid.UUID) *models.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ap, ok := f.appointments[id]; ok {
		cp := *ap
		return &cp
	}
	return nil
}

func (f *fakeRepo) GetActiveService(_ context.Context, id uuid.UUID) (*models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	svc, ok := f.services[id]
	if !ok || !svc.Active {
		return nil, httperr.ErrValidation("service_not_found", "Serviço não encontrado ou inativo.")
	}
	cp := *svc
	return &cp, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ap, ok := f.appointments[id]
	if !ok {
		return nil, httperr.ErrNotFound("appointment_not_found", "Agendamento não encontrado.")
	}
	cp := *ap
	return &cp, nil
}

func (f *fakeRepo) OccupancyByTime(_ context.Context, date string) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]int)
	for _, ap := range f.appointments {
		if ap.Date == date && ap.Status == string(domain.StatusScheduled) {
			out[ap.Time]++
		}
	}
	return out, nil
}

func (f *fakeRepo) List(_ context.Context, filters domain.ListFilters) ([]models.Appointment, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var all []models.Appointment
	for _, ap := range f.appointments {
		if filters.UserID != nil && ap.UserID != *filters.UserID {
			continue
		}
		if len(filters.Status) > 0 {
			found := false
			for _, st := range filters.Status {
				if ap.Status == st {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if filters.DateFrom != "" && ap.Date < filters.DateFrom {
			continue
		}
		if filters.DateTo != "" && ap.Date > filters.DateTo {
			continue
		}
		all = append(all, *ap)
	}

	total := int64(len(all))
	offset := (filters.Page - 1) * filters.PageSize
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + filters.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// checkSlot roda as mesmas regras 5-7 do repositório real. Chamar com
// o mutex já adquirido.
func (f *fakeRepo) checkSlot(ap *models.Appointment, capacity int, exclude uuid.UUID) error {
	occupied, ownDup, plateDup := 0, false, false
	for _, other := range f.appointments {
		if other.ID == exclude || other.Status != string(domain.StatusScheduled) {
			continue
		}
		if other.Date == ap.Date && other.Time == ap.Time {
			occupied++
			if other.UserID == ap.UserID {
				ownDup = true
			}
		}
		if other.Date == ap.Date && other.Plate == ap.Plate {
			plateDup = true
		}
	}
	if occupied >= capacity {
		return httperr.ErrConflict("slot_full", "Horário esgotado.")
	}
	if ownDup {
		return httperr.ErrConflict("duplicate_owner_slot", "Você já possui um agendamento ativo neste horário.")
	}
	if plateDup {
		return httperr.ErrConflict("duplicate_plate_day", "Esta placa já possui agendamento neste dia.")
	}
	return nil
}

func (f *fakeRepo) takeInjectedFailure() error {
	if f.failCount > 0 {
		f.failCount--
		return f.failNextWith
	}
	return nil
}

func (f *fakeRepo) CreateScheduled(_ context.Context, ap *models.Appointment, capacity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.takeInjectedFailure(); err != nil {
		return err
	}
	if err := f.checkSlot(ap, capacity, uuid.Nil); err != nil {
		return err
	}
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateRescheduled(_ context.Context, ap *models.Appointment, capacity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.takeInjectedFailure(); err != nil {
		return err
	}

	// Reagendamento checa só capacidade, excluindo a própria linha.
	occupied := 0
	for _, other := range f.appointments {
		if other.ID == ap.ID || other.Status != string(domain.StatusScheduled) {
			continue
		}
		if other.Date == ap.Date && other.Time == ap.Time {
			occupied++
		}
	}
	if occupied >= capacity {
		return httperr.ErrConflict("slot_full", "Horário esgotado.")
	}

	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateEdited(_ context.Context, ap *models.Appointment, capacity int, slotChanged bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.takeInjectedFailure(); err != nil {
		return err
	}
	if slotChanged {
		if err := f.checkSlot(ap, capacity, ap.ID); err != nil {
			return err
		}
	}
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.appointments[id]; !ok {
		return httperr.ErrNotFound("appointment_not_found", "Agendamento não encontrado.")
	}
	delete(f.appointments, id)
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)
