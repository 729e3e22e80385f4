package appointment

import (
	"github.com/google/uuid"

	"github.com/lavarapido/wash-scheduler/internal/httperr"
	"github.com/lavarapido/wash-scheduler/internal/models"
)

// Caller é a identidade já autenticada pela camada HTTP.
type Caller struct {
	ID   uuid.UUID
	Role string
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// AssertOwnershipOrAdmin é aplicado por todo use case antes de ler ou
// mutar um agendamento existente. A mensagem de 403 é genérica: não
// revela nada sobre o recurso.
func AssertOwnershipOrAdmin(ap *models.Appointment, caller Caller) error {
	if ap == nil {
		return httperr.ErrNotFound("appointment_not_found", "Agendamento não encontrado.")
	}
	if !caller.IsAdmin() && ap.UserID != caller.ID {
		return httperr.ErrForbidden("forbidden", "Você não tem permissão para acessar este agendamento.")
	}
	return nil
}
