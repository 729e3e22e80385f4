package appointment_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/lavarapido/wash-scheduler/internal/domain/appointment"
	"github.com/lavarapido/wash-scheduler/internal/httperr"
	"github.com/lavarapido/wash-scheduler/internal/models"
)

func TestAssertOwnershipOrAdmin(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	ap := &models.Appointment{ID: uuid.New(), UserID: owner}

	t.Run("nil vira not found", func(t *testing.T) {
		err := domain.AssertOwnershipOrAdmin(nil, domain.Caller{ID: owner, Role: models.RoleClient})
		require.Error(t, err)
		assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
	})

	t.Run("dono acessa", func(t *testing.T) {
		assert.NoError(t, domain.AssertOwnershipOrAdmin(ap, domain.Caller{ID: owner, Role: models.RoleClient}))
	})

	t.Run("admin acessa qualquer agendamento", func(t *testing.T) {
		assert.NoError(t, domain.AssertOwnershipOrAdmin(ap, domain.Caller{ID: other, Role: models.RoleAdmin}))
	})

	t.Run("terceiro recebe forbidden genérico", func(t *testing.T) {
		err := domain.AssertOwnershipOrAdmin(ap, domain.Caller{ID: other, Role: models.RoleClient})
		require.Error(t, err)
		assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
		assert.True(t, httperr.IsBusiness(err, "forbidden"))
	})
}
