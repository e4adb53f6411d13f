package slot

import (
	"context"
	"strings"
	"time"

	domain "github.com/tendecorte/turnos-api/internal/domain/slot"
	"github.com/tendecorte/turnos-api/internal/httperr"
	"github.com/tendecorte/turnos-api/internal/models"
	"github.com/tendecorte/turnos-api/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type RequestBookingInput struct {
	// "2006-01-02T15:04" o "2006-01-02 15:04", hora local de la peluquería.
	Fecha string

	// 0 = turno fantasma (sin dueño real).
	UsuarioID uint

	Deshabilitado bool
}

// ======================================================
// USE CASE
// ======================================================

type RequestBooking struct {
	repo        domain.Repository
	notifier    Notifier
	loc         *time.Location
	barberPhone string
}

func NewRequestBooking(
	repo domain.Repository,
	notifier Notifier,
	loc *time.Location,
	barberPhone string,
) *RequestBooking {
	return &RequestBooking{
		repo:        repo,
		notifier:    notifier,
		loc:         loc,
		barberPhone: barberPhone,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RequestBooking) Execute(
	ctx context.Context,
	in RequestBookingInput,
) (*models.Slot, error) {

	// 1. El dueño tiene que existir, salvo turno fantasma
	var cliente *models.User
	if in.UsuarioID != domain.PhantomUserID {
		u, err := uc.repo.GetUserByID(ctx, in.UsuarioID)
		if err != nil {
			return nil, httperr.ErrBusiness("usuario_no_encontrado")
		}
		cliente = u
	}

	// 2. Fecha local exacta, granularidad de minuto
	fecha, err := parseFecha(in.Fecha, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusiness("fecha_invalida")
	}

	// 3. Estado inicial
	estado := domain.InitialStatus(in.UsuarioID, in.Deshabilitado)

	s := &models.Slot{
		Fecha:  fecha,
		Estado: string(estado),
	}
	if cliente != nil {
		id := cliente.ID
		s.UsuarioID = &id
	}

	// 4. Insert atómico con guard de doble reserva
	if err := uc.repo.CreateSlotIfFree(ctx, s); err != nil {
		return nil, err
	}

	// 5. Aviso al peluquero si quedó reservado
	if estado == domain.StatusReserved && cliente != nil {
		uc.notifier.Dispatch(ctx, notify.Message{
			Kind:       notify.KindReserved,
			ToPhone:    uc.barberPhone,
			ClientName: cliente.FullName(),
			Fecha:      fecha,
		})
		s.Usuario = cliente
	}

	return s, nil
}

func parseFecha(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.Replace(strings.TrimSpace(raw), "T", " ", 1)

	t, err := time.ParseInLocation("2006-01-02 15:04:05", raw, loc)
	if err != nil {
		t, err = time.ParseInLocation("2006-01-02 15:04", raw, loc)
	}
	if err != nil {
		return time.Time{}, err
	}

	return domain.NormalizeFecha(t), nil
}
