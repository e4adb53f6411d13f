package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/tendecorte/turnos-api/internal/domain/slot"
	"github.com/tendecorte/turnos-api/internal/httperr"
	"github.com/tendecorte/turnos-api/internal/models"
)

type SlotGormRepository struct {
	db *gorm.DB
}

func NewSlotGormRepository(db *gorm.DB) *SlotGormRepository {
	return &SlotGormRepository{db: db}
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *SlotGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Slot (create / double-booking guard)
// --------------------------------------------------

// CreateSlotIfFree inserta el turno sólo si el minuto está libre. El chequeo y
// el insert corren en una única transacción con lock, y el índice único
// parcial sobre turnos(fecha) cubre el caso de dos transacciones simultáneas.
func (r *SlotGormRepository) CreateSlotIfFree(
	ctx context.Context,
	s *models.Slot,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Slot{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("fecha = ? AND estado IN ?", s.Fecha, domain.ActiveStatuses()).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("horario_reservado")
		}

		if err := tx.Create(s).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return httperr.ErrBusiness("horario_reservado")
			}
			return err
		}

		return nil
	})
}

// --------------------------------------------------
// Slot (state change)
// --------------------------------------------------

func (r *SlotGormRepository) GetSlotByID(
	ctx context.Context,
	id uint,
) (*models.Slot, error) {

	var s models.Slot
	if err := r.db.WithContext(ctx).
		Preload("Usuario").
		First(&s, id).Error; err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *SlotGormRepository) UpdateSlot(
	ctx context.Context,
	s *models.Slot,
) error {
	// Omit para que Save no re-escriba al Usuario precargado (y para poder
	// poner usuario_id en NULL al cancelar).
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(s).Error
}

func (r *SlotGormRepository) DeleteSlot(
	ctx context.Context,
	s *models.Slot,
) error {
	return r.db.WithContext(ctx).Delete(s).Error
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *SlotGormRepository) ListSlots(
	ctx context.Context,
) ([]models.Slot, error) {

	var slots []models.Slot
	if err := r.db.WithContext(ctx).
		Preload("Usuario").
		Order("fecha ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *SlotGormRepository) ListSlotsByStatus(
	ctx context.Context,
	estados []string,
	newestFirst bool,
) ([]models.Slot, error) {

	order := "fecha ASC"
	if newestFirst {
		order = "fecha DESC"
	}

	var slots []models.Slot
	if err := r.db.WithContext(ctx).
		Preload("Usuario").
		Where("estado IN ?", estados).
		Order(order).
		Find(&slots).Error; err != nil {
		return nil, err
	}

	return slots, nil
}

// Compile-time check
var _ domain.Repository = (*SlotGormRepository)(nil)
