package slot

// ===============================
// Slot Status
// ===============================

type Status string

const (
	StatusAvailable Status = "disponible"
	StatusReserved  Status = "reservado"
	StatusConfirmed Status = "confirmado"
	StatusCancelled Status = "cancelado"
	StatusDisabled  Status = "deshabilitado"
)

// ActiveStatuses son los estados que bloquean el horario: mientras exista un
// turno reservado o confirmado en un minuto, nadie más puede tomarlo.
func ActiveStatuses() []string {
	return []string{string(StatusReserved), string(StatusConfirmed)}
}

func IsActive(s Status) bool {
	return s == StatusReserved || s == StatusConfirmed
}

// PhantomUserID marca un turno administrativo sin dueño real.
const PhantomUserID uint = 0

// InitialStatus decide el estado de un turno recién creado.
func InitialStatus(usuarioID uint, deshabilitado bool) Status {
	switch {
	case deshabilitado:
		return StatusDisabled
	case usuarioID != PhantomUserID:
		return StatusReserved
	default:
		return StatusAvailable
	}
}
