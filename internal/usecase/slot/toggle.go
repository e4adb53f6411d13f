package slot

import (
	"context"

	domain "github.com/tendecorte/turnos-api/internal/domain/slot"
	"github.com/tendecorte/turnos-api/internal/httperr"
	"github.com/tendecorte/turnos-api/internal/models"
)

// Deshabilitar y habilitar no notifican a nadie: son mantenimiento de agenda.

type DisableSlot struct {
	repo domain.Repository
}

func NewDisableSlot(repo domain.Repository) *DisableSlot {
	return &DisableSlot{repo: repo}
}

func (uc *DisableSlot) Execute(
	ctx context.Context,
	slotID uint,
) (*models.Slot, error) {

	s, err := uc.repo.GetSlotByID(ctx, slotID)
	if err != nil {
		return nil, httperr.ErrBusiness("turno_no_encontrado")
	}

	domain.Disable(s)

	if err := uc.repo.UpdateSlot(ctx, s); err != nil {
		return nil, err
	}

	return s, nil
}

type EnableSlot struct {
	repo domain.Repository
}

func NewEnableSlot(repo domain.Repository) *EnableSlot {
	return &EnableSlot{repo: repo}
}

func (uc *EnableSlot) Execute(
	ctx context.Context,
	slotID uint,
) (*models.Slot, error) {

	s, err := uc.repo.GetSlotByID(ctx, slotID)
	if err != nil {
		return nil, httperr.ErrBusiness("turno_no_encontrado")
	}

	domain.Enable(s)

	if err := uc.repo.UpdateSlot(ctx, s); err != nil {
		return nil, err
	}

	return s, nil
}
