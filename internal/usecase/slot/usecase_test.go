package slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/tendecorte/turnos-api/internal/domain/slot"
	"github.com/tendecorte/turnos-api/internal/httperr"
	"github.com/tendecorte/turnos-api/internal/models"
	"github.com/tendecorte/turnos-api/internal/notify"
)

const barberPhone = "+5491100000000"

func testLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	require.NoError(t, err)
	return loc
}

func setup(t *testing.T) (*fakeRepo, *recNotifier, *time.Location) {
	t.Helper()
	repo := newFakeRepo()
	repo.addUser(models.User{ID: 5, Nombre: "Juan", Apellido: "Pérez", Telefono: "+5491144445555"})
	repo.addUser(models.User{ID: 7, Nombre: "Ana", Apellido: "García", Telefono: "+5491166667777"})
	return repo, &recNotifier{}, testLoc(t)
}

func TestRequestBookingReservesAndNotifiesBarber(t *testing.T) {
	repo, rec, loc := setup(t)
	uc := NewRequestBooking(repo, rec, loc, barberPhone)

	s, err := uc.Execute(context.Background(), RequestBookingInput{
		Fecha:     "2024-01-10T09:00",
		UsuarioID: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusReserved), s.Estado)
	require.NotNil(t, s.UsuarioID)
	assert.Equal(t, uint(5), *s.UsuarioID)
	assert.Equal(t, time.Date(2024, 1, 10, 9, 0, 0, 0, loc), s.Fecha)

	msgs := rec.all()
	require.Len(t, msgs, 1)
	assert.Equal(t, notify.KindReserved, msgs[0].Kind)
	assert.Equal(t, barberPhone, msgs[0].ToPhone)
	assert.Equal(t, "Juan Pérez", msgs[0].ClientName)
}

func TestRequestBookingDoubleBookingGuard(t *testing.T) {
	repo, rec, loc := setup(t)
	uc := NewRequestBooking(repo, rec, loc, barberPhone)

	_, err := uc.Execute(context.Background(), RequestBookingInput{
		Fecha:     "2024-01-10T09:00",
		UsuarioID: 5,
	})
	require.NoError(t, err)

	// mismo minuto, otro usuario: rechazado
	_, err = uc.Execute(context.Background(), RequestBookingInput{
		Fecha:     "2024-01-10 09:00",
		UsuarioID: 7,
	})
	assert.True(t, httperr.IsBusiness(err, "horario_reservado"))

	// los segundos se truncan, sigue siendo el mismo minuto
	_, err = uc.Execute(context.Background(), RequestBookingInput{
		Fecha:     "2024-01-10 09:00:45",
		UsuarioID: 7,
	})
	assert.True(t, httperr.IsBusiness(err, "horario_reservado"))

	// el minuto siguiente está libre
	_, err = uc.Execute(context.Background(), RequestBookingInput{
		Fecha:     "2024-01-10T09:01",
		UsuarioID: 7,
	})
	assert.NoError(t, err)
}

func TestRequestBookingPhantomSlot(t *testing.T) {
	repo, rec, loc := setup(t)
	uc := NewRequestBooking(repo, rec, loc, barberPhone)

	s, err := uc.Execute(context.Background(), RequestBookingInput{
		Fecha:     "2024-01-10T10:00",
		UsuarioID: domain.PhantomUserID,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusAvailable), s.Estado)
	assert.Nil(t, s.UsuarioID)
	assert.Empty(t, rec.all())
}

func TestRequestBookingDisabledFlag(t *testing.T) {
	repo, rec, loc := setup(t)
	uc := NewRequestBooking(repo, rec, loc, barberPhone)

	s, err := uc.Execute(context.Background(), RequestBookingInput{
		Fecha:         "2024-01-10T10:00",
		UsuarioID:     domain.PhantomUserID,
		Deshabilitado: true,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusDisabled), s.Estado)
	assert.Empty(t, rec.all())

	// deshabilitado no bloquea el minuto para una reserva real
	_, err = uc.Execute(context.Background(), RequestBookingInput{
		Fecha:     "2024-01-10T10:00",
		UsuarioID: 5,
	})
	assert.NoError(t, err)
}

func TestRequestBookingUnknownUser(t *testing.T) {
	repo, rec, loc := setup(t)
	uc := NewRequestBooking(repo, rec, loc, barberPhone)

	_, err := uc.Execute(context.Background(), RequestBookingInput{
		Fecha:     "2024-01-10T09:00",
		UsuarioID: 99,
	})
	assert.True(t, httperr.IsBusiness(err, "usuario_no_encontrado"))
	assert.Empty(t, rec.all())
}

func TestRequestBookingBadFecha(t *testing.T) {
	repo, rec, loc := setup(t)
	uc := NewRequestBooking(repo, rec, loc, barberPhone)

	_, err := uc.Execute(context.Background(), RequestBookingInput{
		Fecha:     "10/01/2024 09:00",
		UsuarioID: 5,
	})
	assert.True(t, httperr.IsBusiness(err, "fecha_invalida"))
}

func TestConfirmNotifiesOwner(t *testing.T) {
	repo, rec, loc := setup(t)
	create := NewRequestBooking(repo, rec, loc, barberPhone)
	confirm := NewConfirmSlot(repo, rec)

	s, err := create.Execute(context.Background(), RequestBookingInput{
		Fecha:     "2024-01-10T09:00",
		UsuarioID: 5,
	})
	require.NoError(t, err)

	got, err := confirm.Execute(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), got.Estado)

	msgs := rec.all()
	require.Len(t, msgs, 2) // reserva + confirmación
	assert.Equal(t, notify.KindConfirmed, msgs[1].Kind)
	assert.Equal(t, "+5491144445555", msgs[1].ToPhone)
}

func TestConfirmNotFound(t *testing.T) {
	repo, rec, _ := setup(t)
	confirm := NewConfirmSlot(repo, rec)

	_, err := confirm.Execute(context.Background(), 42)
	assert.True(t, httperr.IsBusiness(err, "turno_no_encontrado"))

	slots, _ := repo.ListSlots(context.Background())
	assert.Empty(t, slots)
	assert.Empty(t, rec.all())
}

func TestCancelClearsOwnerAndNotifiesPreviousOwner(t *testing.T) {
	repo, rec, loc := setup(t)
	create := NewRequestBooking(repo, rec, loc, barberPhone)
	cancel := NewCancelSlot(repo, rec)

	s, err := create.Execute(context.Background(), RequestBookingInput{
		Fecha:     "2024-01-10T09:00",
		UsuarioID: 5,
	})
	require.NoError(t, err)

	got, err := cancel.Execute(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusAvailable), got.Estado)
	assert.Nil(t, got.UsuarioID)

	// la lista ya no muestra dueño
	slots, err := repo.ListSlots(context.Background())
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Nil(t, slots[0].Usuario)

	msgs := rec.all()
	require.Len(t, msgs, 2)
	assert.Equal(t, notify.KindCancelled, msgs[1].Kind)
	assert.Equal(t, "+5491144445555", msgs[1].ToPhone)
	assert.Equal(t, "Juan Pérez", msgs[1].ClientName)
}

func TestDisableEnable(t *testing.T) {
	repo, rec, loc := setup(t)
	create := NewRequestBooking(repo, rec, loc, barberPhone)
	disable := NewDisableSlot(repo)
	enable := NewEnableSlot(repo)

	s, err := create.Execute(context.Background(), RequestBookingInput{
		Fecha:     "2024-01-10T09:00",
		UsuarioID: domain.PhantomUserID,
	})
	require.NoError(t, err)

	got, err := disable.Execute(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusDisabled), got.Estado)

	got, err = enable.Execute(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusAvailable), got.Estado)

	assert.Empty(t, rec.all())
}

func TestDeleteNotifiesOwnerFirst(t *testing.T) {
	repo, rec, loc := setup(t)
	create := NewRequestBooking(repo, rec, loc, barberPhone)
	del := NewDeleteSlot(repo, rec)

	s, err := create.Execute(context.Background(), RequestBookingInput{
		Fecha:     "2024-01-10T09:00",
		UsuarioID: 5,
	})
	require.NoError(t, err)

	require.NoError(t, del.Execute(context.Background(), s.ID))

	slots, _ := repo.ListSlots(context.Background())
	assert.Empty(t, slots)

	msgs := rec.all()
	require.Len(t, msgs, 2)
	assert.Equal(t, notify.KindCancelled, msgs[1].Kind)
}

func TestHistoryFlattensStatus(t *testing.T) {
	repo, rec, loc := setup(t)
	create := NewRequestBooking(repo, rec, loc, barberPhone)
	confirm := NewConfirmSlot(repo, rec)
	list := NewListSlots(repo)

	first, err := create.Execute(context.Background(), RequestBookingInput{
		Fecha:     "2024-01-10T09:00",
		UsuarioID: 5,
	})
	require.NoError(t, err)

	_, err = create.Execute(context.Background(), RequestBookingInput{
		Fecha:     "2024-01-10T11:00",
		UsuarioID: 7,
	})
	require.NoError(t, err)

	_, err = confirm.Execute(context.Background(), first.ID)
	require.NoError(t, err)

	rows, err := list.History(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// orden descendente por fecha
	assert.False(t, rows[0].Confirmado)
	assert.Equal(t, "Ana", rows[0].Cliente.Nombre)
	assert.True(t, rows[1].Confirmado)
	assert.Equal(t, "Juan", rows[1].Cliente.Nombre)
}

func TestBookConfirmCancelRebookScenario(t *testing.T) {
	repo, rec, loc := setup(t)
	create := NewRequestBooking(repo, rec, loc, barberPhone)
	confirm := NewConfirmSlot(repo, rec)
	cancel := NewCancelSlot(repo, rec)

	ctx := context.Background()

	s, err := create.Execute(ctx, RequestBookingInput{Fecha: "2024-01-10T09:00", UsuarioID: 5})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusReserved), s.Estado)

	got, err := confirm.Execute(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), got.Estado)

	// confirmado sigue bloqueando el minuto
	_, err = create.Execute(ctx, RequestBookingInput{Fecha: "2024-01-10T09:00", UsuarioID: 7})
	assert.True(t, httperr.IsBusiness(err, "horario_reservado"))

	_, err = cancel.Execute(ctx, s.ID)
	require.NoError(t, err)

	// cancelado, el mismo minuto vuelve a estar disponible
	s2, err := create.Execute(ctx, RequestBookingInput{Fecha: "2024-01-10T09:00", UsuarioID: 7})
	require.NoError(t, err)
	require.NotNil(t, s2.UsuarioID)
	assert.Equal(t, uint(7), *s2.UsuarioID)
}
