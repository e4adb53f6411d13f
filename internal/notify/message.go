package notify

import (
	"time"

	"github.com/tendecorte/turnos-api/internal/timezone"
)

type Kind string

const (
	// Cliente reservó: aviso al peluquero.
	KindReserved Kind = "reservado"
	// Peluquero confirmó: aviso al cliente.
	KindConfirmed Kind = "confirmado"
	// Peluquero canceló o eliminó el turno: aviso al cliente.
	KindCancelled Kind = "cancelado"
)

// Message es lo que el resto del sistema despacha. El Dispatcher lo persiste
// como models.Notification antes de intentar el envío.
type Message struct {
	Kind       Kind
	ToPhone    string
	ClientName string
	Fecha      time.Time
}

// Plantillas aprobadas en la cuenta de WhatsApp Business.
func templateFor(kind Kind) string {
	switch kind {
	case KindReserved:
		return "aviso_de_turno_reservado"
	case KindConfirmed:
		return "confirmacion_turno"
	default:
		return "cancelacion_turno"
	}
}

// templateParams arma los parámetros del body: nombre, fecha y hora en horario
// de Buenos Aires.
func templateParams(clientName string, fecha time.Time, tz string) []string {
	local := fecha.In(timezone.Location(tz))
	return []string{
		clientName,
		local.Format("02/01/2006"),
		local.Format("15:04"),
	}
}
