package slot

import (
	"context"

	domain "github.com/tendecorte/turnos-api/internal/domain/slot"
	"github.com/tendecorte/turnos-api/internal/httperr"
	"github.com/tendecorte/turnos-api/internal/models"
	"github.com/tendecorte/turnos-api/internal/notify"
)

type CancelSlot struct {
	repo     domain.Repository
	notifier Notifier
}

func NewCancelSlot(repo domain.Repository, notifier Notifier) *CancelSlot {
	return &CancelSlot{
		repo:     repo,
		notifier: notifier,
	}
}

func (uc *CancelSlot) Execute(
	ctx context.Context,
	slotID uint,
) (*models.Slot, error) {

	s, err := uc.repo.GetSlotByID(ctx, slotID)
	if err != nil {
		return nil, httperr.ErrBusiness("turno_no_encontrado")
	}

	// El dueño se captura antes de limpiarlo: el aviso va al cliente previo.
	previo := s.Usuario

	domain.Cancel(s)

	if err := uc.repo.UpdateSlot(ctx, s); err != nil {
		return nil, err
	}

	if previo != nil {
		uc.notifier.Dispatch(ctx, notify.Message{
			Kind:       notify.KindCancelled,
			ToPhone:    previo.Telefono,
			ClientName: previo.FullName(),
			Fecha:      s.Fecha,
		})
	}

	return s, nil
}
