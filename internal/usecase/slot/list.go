package slot

import (
	"context"

	domain "github.com/tendecorte/turnos-api/internal/domain/slot"
	"github.com/tendecorte/turnos-api/internal/dto"
	"github.com/tendecorte/turnos-api/internal/models"
)

type ListSlots struct {
	repo domain.Repository
}

func NewListSlots(repo domain.Repository) *ListSlots {
	return &ListSlots{repo: repo}
}

// All devuelve todos los turnos, fecha ascendente, con los datos del cliente
// cuando lo hay.
func (uc *ListSlots) All(ctx context.Context) ([]models.Slot, error) {
	return uc.repo.ListSlots(ctx)
}

// Pending devuelve sólo los reservados, a la espera de confirmación.
func (uc *ListSlots) Pending(ctx context.Context) ([]models.Slot, error) {
	return uc.repo.ListSlotsByStatus(
		ctx,
		[]string{string(domain.StatusReserved)},
		false,
	)
}

// History devuelve confirmados y reservados, más recientes primero, aplanados
// para la vista del admin.
func (uc *ListSlots) History(ctx context.Context) ([]dto.HistoryRowDTO, error) {
	slots, err := uc.repo.ListSlotsByStatus(
		ctx,
		[]string{string(domain.StatusConfirmed), string(domain.StatusReserved)},
		true,
	)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.HistoryRowDTO, 0, len(slots))
	for _, s := range slots {
		row := dto.HistoryRowDTO{
			ID:         s.ID,
			Fecha:      s.Fecha,
			Confirmado: s.Estado == string(domain.StatusConfirmed),
		}
		if s.Usuario != nil {
			row.Cliente = &dto.ClienteDTO{
				Nombre:   s.Usuario.Nombre,
				Apellido: s.Usuario.Apellido,
				Telefono: s.Usuario.Telefono,
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
