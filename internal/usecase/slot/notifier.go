package slot

import (
	"context"

	"github.com/tendecorte/turnos-api/internal/notify"
)

// Notifier desacopla los use cases del dispatcher real; en tests se reemplaza
// por un recorder.
type Notifier interface {
	Dispatch(ctx context.Context, msg notify.Message)
}
