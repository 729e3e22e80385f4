package appointment

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/lavarapido/wash-scheduler/internal/domain/appointment"
	"github.com/lavarapido/wash-scheduler/internal/events"
	"github.com/lavarapido/wash-scheduler/internal/httperr"
	"github.com/lavarapido/wash-scheduler/internal/models"
)

// Datas bem no futuro para nunca cair na validação de passado.
const (
	futureDate = "2030-05-20"
	otherDate  = "2030-05-21"
)

func testScheduleUC() domain.Schedule {
	return domain.Schedule{
		Open:        "08:00",
		Close:       "18:00",
		SlotMinutes: 30,
		LunchStart:  "12:00",
		LunchEnd:    "13:00",
		Capacity:    2,
		Timezone:    "America/Sao_Paulo",
	}
}

func clientCaller() domain.Caller {
	return domain.Caller{ID: uuid.New(), Role: models.RoleClient}
}

func validCreateInput(serviceID uuid.UUID) CreateInput {
	return CreateInput{
		VehicleModel: "Fiat Argo",
		VehicleColor: "Prata",
		Plate:        "abc1d23",
		ServiceID:    serviceID,
		Date:         futureDate,
		Time:         "09:00",
	}
}

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()

	setup := func() (*fakeRepo, *CreateAppointment, uuid.UUID) {
		repo := newFakeRepo()
		svcID := repo.addService(&models.Service{Name: "Lavagem completa", Price: 80, Active: true})
		uc := NewCreateAppointment(testScheduleUC(), repo, nil, events.NopPublisher{})
		return repo, uc, svcID
	}

	t.Run("sucesso normaliza placa e persiste scheduled", func(t *testing.T) {
		repo, uc, svcID := setup()
		caller := clientCaller()

		ap, err := uc.Execute(ctx, caller, validCreateInput(svcID))
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, ap.ID)
		assert.Equal(t, caller.ID, ap.UserID)
		assert.Equal(t, "ABC1D23", ap.Plate)
		assert.Equal(t, string(domain.StatusScheduled), ap.Status)

		stored := repo.get(ap.ID)
		require.NotNil(t, stored)
		assert.Equal(t, futureDate, stored.Date)
		assert.Equal(t, "09:00", stored.Time)
	})

	t.Run("validações de entrada", func(t *testing.T) {
		_, uc, svcID := setup()

		cases := []struct {
			name   string
			mutate func(*CreateInput)
			code   string
		}{
			{"modelo obrigatório", func(in *CreateInput) { in.VehicleModel = "" }, "missing_field"},
			{"data malformada", func(in *CreateInput) { in.Date = "20/05/2030" }, "invalid_date"},
			{"hora malformada", func(in *CreateInput) { in.Time = "9h" }, "invalid_time"},
			{"placa inválida", func(in *CreateInput) { in.Plate = "AB123" }, "invalid_plate"},
			{"serviço obrigatório", func(in *CreateInput) { in.ServiceID = uuid.Nil }, "missing_field"},
			{"data no passado", func(in *CreateInput) { in.Date = "2020-01-10" }, "past_datetime"},
			{"horário fora da grade", func(in *CreateInput) { in.Time = "12:30" }, "invalid_slot"},
			{"horário fora do expediente", func(in *CreateInput) { in.Time = "19:00" }, "invalid_slot"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				in := validCreateInput(svcID)
				tc.mutate(&in)

				_, err := uc.Execute(ctx, clientCaller(), in)
				require.Error(t, err)
				assert.True(t, httperr.IsBusiness(err, tc.code), "esperava %s, veio %v", tc.code, err)
				assert.True(t, httperr.IsKind(err, httperr.KindValidation))
			})
		}
	})

	t.Run("serviço inexistente ou inativo", func(t *testing.T) {
		repo, uc, _ := setup()
		inactive := repo.addService(&models.Service{Name: "Enceramento", Active: false})

		_, err := uc.Execute(ctx, clientCaller(), validCreateInput(inactive))
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "service_not_found"))

		_, err = uc.Execute(ctx, clientCaller(), validCreateInput(uuid.New()))
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "service_not_found"))
	})

	t.Run("slot cheio retorna conflito", func(t *testing.T) {
		repo, uc, svcID := setup()

		in := validCreateInput(svcID)
		_, err := uc.Execute(ctx, clientCaller(), in)
		require.NoError(t, err)

		in.Plate = "XYZ9A88"
		_, err = uc.Execute(ctx, clientCaller(), in)
		require.NoError(t, err)

		// Capacidade 2 esgotada.
		in.Plate = "QWE1B45"
		_, err = uc.Execute(ctx, clientCaller(), in)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "slot_full"))
		assert.True(t, httperr.IsKind(err, httperr.KindConflict))
		assert.Len(t, repo.appointments, 2)
	})

	t.Run("mesmo dono não repete o slot", func(t *testing.T) {
		_, uc, svcID := setup()
		caller := clientCaller()

		in := validCreateInput(svcID)
		_, err := uc.Execute(ctx, caller, in)
		require.NoError(t, err)

		in.Plate = "XYZ9A88"
		_, err = uc.Execute(ctx, caller, in)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "duplicate_owner_slot"))
	})

	t.Run("mesma placa não repete o dia", func(t *testing.T) {
		_, uc, svcID := setup()

		in := validCreateInput(svcID)
		_, err := uc.Execute(ctx, clientCaller(), in)
		require.NoError(t, err)

		in.Time = "10:00"
		_, err = uc.Execute(ctx, clientCaller(), in)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "duplicate_plate_day"))
	})

	t.Run("slot cancelado volta a aceitar a placa", func(t *testing.T) {
		repo, uc, svcID := setup()

		in := validCreateInput(svcID)
		first, err := uc.Execute(ctx, clientCaller(), in)
		require.NoError(t, err)

		stored := repo.get(first.ID)
		stored.Status = string(domain.StatusCancelled)
		repo.seed(stored)

		_, err = uc.Execute(ctx, clientCaller(), in)
		assert.NoError(t, err)
	})

	t.Run("conflito transitório é repetido até passar", func(t *testing.T) {
		repo, uc, svcID := setup()
		repo.failNextWith = httperr.ErrUnavailable("storage_conflict", "Conflito temporário no banco, tente novamente.")
		repo.failCount = 2

		_, err := uc.Execute(ctx, clientCaller(), validCreateInput(svcID))
		assert.NoError(t, err)
		assert.Len(t, repo.appointments, 1)
	})

	t.Run("conflito transitório persistente sobe como unavailable", func(t *testing.T) {
		repo, uc, svcID := setup()
		repo.failNextWith = httperr.ErrUnavailable("storage_conflict", "Conflito temporário no banco, tente novamente.")
		repo.failCount = maxStorageRetries

		_, err := uc.Execute(ctx, clientCaller(), validCreateInput(svcID))
		require.Error(t, err)
		assert.True(t, httperr.IsKind(err, httperr.KindUnavailable))
	})
}

// Corrida pela última vaga: N clientes disputam um slot de capacidade 1
// ao mesmo tempo. Exatamente um insert passa, o resto sai com slot_full.
func TestCreateAppointmentLastSeatRace(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svcID := repo.addService(&models.Service{Name: "Lavagem simples", Price: 40, Active: true})

	schedule := testScheduleUC()
	schedule.Capacity = 1
	uc := NewCreateAppointment(schedule, repo, nil, events.NopPublisher{})

	const contenders = 8
	plates := []string{"AAA1A11", "BBB2B22", "CCC3C33", "DDD4D44", "EEE5E55", "FFF6F66", "GGG7G77", "HHH8H88"}

	var wg sync.WaitGroup
	errs := make([]error, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := validCreateInput(svcID)
			in.Plate = plates[i]
			_, errs[i] = uc.Execute(ctx, clientCaller(), in)
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		assert.True(t, httperr.IsBusiness(err, "slot_full"), "perdedor deve ver slot_full, veio %v", err)
	}

	assert.Equal(t, 1, won, "só um concorrente leva a última vaga")
	assert.Len(t, repo.appointments, 1)
}
