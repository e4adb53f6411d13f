package slot

import (
	"time"

	"github.com/tendecorte/turnos-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// NormalizeFecha trunca a granularidad de minuto.
func NormalizeFecha(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

// Confirm marca el turno como confirmado. Cualquier estado previo es válido:
// el guard de doble reserva aplica sólo en la creación.
func Confirm(s *models.Slot) {
	s.Estado = string(StatusConfirmed)
}

// Cancel libera el turno: vuelve a disponible y pierde a su dueño.
func Cancel(s *models.Slot) {
	s.Estado = string(StatusAvailable)
	s.UsuarioID = nil
	s.Usuario = nil
}

func Disable(s *models.Slot) {
	s.Estado = string(StatusDisabled)
}

func Enable(s *models.Slot) {
	s.Estado = string(StatusAvailable)
}
