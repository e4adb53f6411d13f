package notify

import (
	"context"

	"gorm.io/gorm"

	"github.com/tendecorte/turnos-api/internal/models"
)

const (
	StatusPending = "pendiente"
	StatusSent    = "enviado"
	StatusFailed  = "fallido"
)

// Store persiste el outbox de notificaciones.
type Store interface {
	Enqueue(ctx context.Context, n *models.Notification) error
	NextPending(ctx context.Context, limit int) ([]models.Notification, error)
	MarkSent(ctx context.Context, id uint, attempts int) error
	MarkFailed(ctx context.Context, id uint, attempts int, lastErr string) error
	ListRecent(ctx context.Context, limit int) ([]models.Notification, error)
}

type GormOutbox struct {
	db *gorm.DB
}

func NewGormOutbox(db *gorm.DB) *GormOutbox {
	return &GormOutbox{db: db}
}

func (o *GormOutbox) Enqueue(ctx context.Context, n *models.Notification) error {
	n.Status = StatusPending
	return o.db.WithContext(ctx).Create(n).Error
}

func (o *GormOutbox) NextPending(ctx context.Context, limit int) ([]models.Notification, error) {
	var rows []models.Notification
	if err := o.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (o *GormOutbox) MarkSent(ctx context.Context, id uint, attempts int) error {
	return o.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     StatusSent,
			"attempts":   attempts,
			"last_error": "",
		}).Error
}

func (o *GormOutbox) MarkFailed(ctx context.Context, id uint, attempts int, lastErr string) error {
	if len(lastErr) > 255 {
		lastErr = lastErr[:255]
	}
	return o.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     StatusFailed,
			"attempts":   attempts,
			"last_error": lastErr,
		}).Error
}

func (o *GormOutbox) ListRecent(ctx context.Context, limit int) ([]models.Notification, error) {
	var rows []models.Notification
	if err := o.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

var _ Store = (*GormOutbox)(nil)
