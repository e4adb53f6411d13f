package notify

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tendecorte/turnos-api/internal/models"
)

const queueKey = "notify:queue"

// Dispatcher persiste cada mensaje como fila del outbox y avisa al worker.
// Nunca bloquea al request que lo llama: si la persistencia falla se loguea y
// el booking sigue adelante.
type Dispatcher struct {
	store  Store
	rdb    *redis.Client
	wake   chan struct{}
	logger zerolog.Logger
}

func NewDispatcher(store Store, rdb *redis.Client, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		store:  store,
		rdb:    rdb,
		wake:   make(chan struct{}, 64),
		logger: logger,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) {
	n := &models.Notification{
		Kind:       string(msg.Kind),
		ToPhone:    msg.ToPhone,
		ClientName: msg.ClientName,
		SlotFecha:  msg.Fecha,
	}

	if err := d.store.Enqueue(ctx, n); err != nil {
		d.logger.Error().Err(err).Str("kind", string(msg.Kind)).Msg("enqueue notification")
		return
	}

	if d.rdb != nil {
		if err := d.rdb.RPush(ctx, queueKey, n.ID).Err(); err != nil {
			d.logger.Warn().Err(err).Msg("redis push failed, worker will poll")
		}
		return
	}

	select {
	case d.wake <- struct{}{}:
	default:
		// el worker ya tiene trabajo pendiente encolado
	}
}
