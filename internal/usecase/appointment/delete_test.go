package appointment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/lavarapido/wash-scheduler/internal/domain/appointment"
	"github.com/lavarapido/wash-scheduler/internal/events"
	"github.com/lavarapido/wash-scheduler/internal/httperr"
	"github.com/lavarapido/wash-scheduler/internal/models"
)

func TestDeleteAppointment(t *testing.T) {
	ctx := context.Background()

	setup := func() (*fakeRepo, *DeleteAppointment) {
		repo := newFakeRepo()
		uc := NewDeleteAppointment(repo, nil, events.NopPublisher{})
		return repo, uc
	}

	seedWithStatus := func(repo *fakeRepo, userID uuid.UUID, st domain.Status) *models.Appointment {
		ap := seedScheduled(repo, userID, "ABC1D23", futureDate, "09:00")
		stored := repo.get(ap.ID)
		stored.Status = string(st)
		repo.seed(stored)
		return stored
	}

	t.Run("cliente exclui cancelado", func(t *testing.T) {
		repo, uc := setup()
		caller := clientCaller()
		ap := seedWithStatus(repo, caller.ID, domain.StatusCancelled)

		require.NoError(t, uc.Execute(ctx, caller, ap.ID))
		assert.Nil(t, repo.get(ap.ID))
	})

	t.Run("cliente não exclui finalizado nem agendado", func(t *testing.T) {
		repo, uc := setup()
		caller := clientCaller()

		for _, st := range []domain.Status{domain.StatusScheduled, domain.StatusCompleted} {
			ap := seedWithStatus(repo, caller.ID, st)

			err := uc.Execute(ctx, caller, ap.ID)
			require.Error(t, err, st)
			assert.True(t, httperr.IsBusiness(err, "invalid_state"), st)
			assert.NotNil(t, repo.get(ap.ID), st)
		}
	})

	t.Run("admin exclui finalizado", func(t *testing.T) {
		repo, uc := setup()
		admin := domain.Caller{ID: uuid.New(), Role: models.RoleAdmin}
		ap := seedWithStatus(repo, uuid.New(), domain.StatusCompleted)

		require.NoError(t, uc.Execute(ctx, admin, ap.ID))
		assert.Nil(t, repo.get(ap.ID))
	})

	t.Run("nem admin exclui agendado ativo", func(t *testing.T) {
		repo, uc := setup()
		admin := domain.Caller{ID: uuid.New(), Role: models.RoleAdmin}
		ap := seedScheduled(repo, uuid.New(), "ABC1D23", futureDate, "09:00")

		err := uc.Execute(ctx, admin, ap.ID)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	})

	t.Run("terceiro recebe forbidden antes da regra de estado", func(t *testing.T) {
		repo, uc := setup()
		ap := seedWithStatus(repo, uuid.New(), domain.StatusCancelled)

		err := uc.Execute(ctx, clientCaller(), ap.ID)
		require.Error(t, err)
		assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
	})

	t.Run("id inexistente", func(t *testing.T) {
		_, uc := setup()
		err := uc.Execute(ctx, clientCaller(), uuid.New())
		require.Error(t, err)
		assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
	})
}
