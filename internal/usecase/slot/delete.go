package slot

import (
	"context"

	domain "github.com/tendecorte/turnos-api/internal/domain/slot"
	"github.com/tendecorte/turnos-api/internal/httperr"
	"github.com/tendecorte/turnos-api/internal/notify"
)

type DeleteSlot struct {
	repo     domain.Repository
	notifier Notifier
}

func NewDeleteSlot(repo domain.Repository, notifier Notifier) *DeleteSlot {
	return &DeleteSlot{
		repo:     repo,
		notifier: notifier,
	}
}

func (uc *DeleteSlot) Execute(
	ctx context.Context,
	slotID uint,
) error {

	s, err := uc.repo.GetSlotByID(ctx, slotID)
	if err != nil {
		return httperr.ErrBusiness("turno_no_encontrado")
	}

	// Aviso de cancelación antes de borrar, mientras el dueño sigue cargado.
	if s.Usuario != nil {
		uc.notifier.Dispatch(ctx, notify.Message{
			Kind:       notify.KindCancelled,
			ToPhone:    s.Usuario.Telefono,
			ClientName: s.Usuario.FullName(),
			Fecha:      s.Fecha,
		})
	}

	return uc.repo.DeleteSlot(ctx, s)
}
