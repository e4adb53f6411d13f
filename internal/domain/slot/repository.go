package slot

import (
	"context"

	"github.com/tendecorte/turnos-api/internal/models"
)

type Repository interface {
	// -------- User --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Slot (create / double-booking guard) --------
	CreateSlotIfFree(
		ctx context.Context,
		s *models.Slot,
	) error

	// -------- Slot (state change) --------
	GetSlotByID(
		ctx context.Context,
		id uint,
	) (*models.Slot, error)

	UpdateSlot(
		ctx context.Context,
		s *models.Slot,
	) error

	DeleteSlot(
		ctx context.Context,
		s *models.Slot,
	) error

	// -------- Listings --------
	ListSlots(
		ctx context.Context,
	) ([]models.Slot, error)

	ListSlotsByStatus(
		ctx context.Context,
		estados []string,
		newestFirst bool,
	) ([]models.Slot, error)
}
