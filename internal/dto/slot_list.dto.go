package dto

import "time"

type ClienteDTO struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Telefono string `json:"telefono"`
}

// HistoryRowDTO aplana el estado: el historial del admin sólo distingue
// confirmado de reservado.
type HistoryRowDTO struct {
	ID         uint        `json:"id"`
	Fecha      time.Time   `json:"fecha"`
	Confirmado bool        `json:"confirmado"`
	Cliente    *ClienteDTO `json:"cliente"`
}
