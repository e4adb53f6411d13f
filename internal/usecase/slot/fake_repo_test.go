package slot

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"

	domain "github.com/tendecorte/turnos-api/internal/domain/slot"
	"github.com/tendecorte/turnos-api/internal/httperr"
	"github.com/tendecorte/turnos-api/internal/models"
	"github.com/tendecorte/turnos-api/internal/notify"
)

// fakeRepo reproduce en memoria el contrato del repositorio gorm, incluido el
// guard de doble reserva.
type fakeRepo struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	slots  map[uint]models.Slot
	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users: make(map[uint]*models.User),
		slots: make(map[uint]models.Slot),
	}
}

func (r *fakeRepo) addUser(u models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = &u
	return &u
}

func (r *fakeRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) CreateSlotIfFree(ctx context.Context, s *models.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.slots {
		if existing.Fecha.Equal(s.Fecha) && domain.IsActive(domain.Status(existing.Estado)) {
			return httperr.ErrBusiness("horario_reservado")
		}
	}

	r.nextID++
	s.ID = r.nextID
	r.slots[s.ID] = r.stripped(*s)
	return nil
}

func (r *fakeRepo) GetSlotByID(ctx context.Context, id uint) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked(id)
}

func (r *fakeRepo) UpdateSlot(ctx context.Context, s *models.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.slots[s.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.slots[s.ID] = r.stripped(*s)
	return nil
}

func (r *fakeRepo) DeleteSlot(ctx context.Context, s *models.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.slots[s.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.slots, s.ID)
	return nil
}

func (r *fakeRepo) ListSlots(ctx context.Context) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listLocked(nil, false), nil
}

func (r *fakeRepo) ListSlotsByStatus(ctx context.Context, estados []string, newestFirst bool) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listLocked(estados, newestFirst), nil
}

// --------------------------------------------------

func (r *fakeRepo) loadLocked(id uint) (*models.Slot, error) {
	stored, ok := r.slots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	copy := stored
	if copy.UsuarioID != nil {
		if u, ok := r.users[*copy.UsuarioID]; ok {
			uc := *u
			copy.Usuario = &uc
		}
	}
	return &copy, nil
}

func (r *fakeRepo) listLocked(estados []string, newestFirst bool) []models.Slot {
	var out []models.Slot
	for id := range r.slots {
		s, _ := r.loadLocked(id)
		if estados != nil && !contains(estados, s.Estado) {
			continue
		}
		out = append(out, *s)
	}

	sort.Slice(out, func(i, j int) bool {
		if newestFirst {
			return out[i].Fecha.After(out[j].Fecha)
		}
		return out[i].Fecha.Before(out[j].Fecha)
	})
	return out
}

// stripped guarda sin la asociación, como hace el repo gorm con Omit.
func (r *fakeRepo) stripped(s models.Slot) models.Slot {
	s.Usuario = nil
	return s
}

func contains(ss []string, v string) bool {
	for _, s := range ss {
		if s == v {
			return true
		}
	}
	return false
}

var _ domain.Repository = (*fakeRepo)(nil)

// recNotifier acumula los mensajes despachados.
type recNotifier struct {
	mu   sync.Mutex
	msgs []notify.Message
}

func (n *recNotifier) Dispatch(ctx context.Context, msg notify.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func (n *recNotifier) all() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.msgs...)
}

var _ Notifier = (*recNotifier)(nil)
