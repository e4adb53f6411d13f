package slot

import (
	"context"

	domain "github.com/tendecorte/turnos-api/internal/domain/slot"
	"github.com/tendecorte/turnos-api/internal/httperr"
	"github.com/tendecorte/turnos-api/internal/models"
	"github.com/tendecorte/turnos-api/internal/notify"
)

type ConfirmSlot struct {
	repo     domain.Repository
	notifier Notifier
}

func NewConfirmSlot(repo domain.Repository, notifier Notifier) *ConfirmSlot {
	return &ConfirmSlot{
		repo:     repo,
		notifier: notifier,
	}
}

func (uc *ConfirmSlot) Execute(
	ctx context.Context,
	slotID uint,
) (*models.Slot, error) {

	s, err := uc.repo.GetSlotByID(ctx, slotID)
	if err != nil {
		return nil, httperr.ErrBusiness("turno_no_encontrado")
	}

	domain.Confirm(s)

	if err := uc.repo.UpdateSlot(ctx, s); err != nil {
		return nil, err
	}

	if s.Usuario != nil {
		uc.notifier.Dispatch(ctx, notify.Message{
			Kind:       notify.KindConfirmed,
			ToPhone:    s.Usuario.Telefono,
			ClientName: s.Usuario.FullName(),
			Fecha:      s.Fecha,
		})
	}

	return s, nil
}
