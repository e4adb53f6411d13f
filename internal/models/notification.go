package models

import "time"

// Notification es una fila del outbox de WhatsApp. Los estados de envío son
// pendiente -> enviado | fallido.
type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Kind       string    `gorm:"size:20;not null" json:"kind"`
	ToPhone    string    `gorm:"size:20;not null" json:"to_phone"`
	ClientName string    `gorm:"size:200" json:"client_name"`
	SlotFecha  time.Time `json:"slot_fecha"`

	Status    string `gorm:"size:20;default:'pendiente';index" json:"status"`
	Attempts  int    `json:"attempts"`
	LastError string `gorm:"size:255" json:"last_error"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Notification) TableName() string {
	return "notificaciones"
}
