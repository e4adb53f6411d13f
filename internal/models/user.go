package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Nombre   string `gorm:"size:100;not null" json:"nombre"`
	Apellido string `gorm:"size:100;not null" json:"apellido"`

	// E.164, normalizado antes de guardar
	Telefono     string `gorm:"size:20;uniqueIndex;not null" json:"telefono"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	Admin bool `gorm:"default:false" json:"admin"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "usuarios"
}

func (u *User) FullName() string {
	return u.Nombre + " " + u.Apellido
}
