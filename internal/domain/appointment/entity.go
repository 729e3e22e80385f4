package appointment

import (
	"time"

	"github.com/lavarapido/wash-scheduler/internal/httperr"
	"github.com/lavarapido/wash-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ApplyStatus executa a transição já autorizada, marcando o timestamp
// do estado terminal correspondente.
func ApplyStatus(ap *models.Appointment, to Status, now time.Time) error {
	if !CanTransition(Status(ap.Status), to) {
		return httperr.ErrConflict("invalid_transition", "Transição de status não permitida.")
	}

	ap.Status = string(to)
	switch to {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
	return nil
}
