package models

import "time"

type Slot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Granularidad de minuto; los segundos se truncan al crear.
	Fecha time.Time `gorm:"not null;index" json:"fecha"`

	UsuarioID *uint `json:"usuarioId"`
	Usuario   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"cliente,omitempty"`

	Estado string `gorm:"size:20;default:'disponible'" json:"estado"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Slot) TableName() string {
	return "turnos"
}
