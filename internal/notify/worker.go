package notify

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tendecorte/turnos-api/internal/metrics"
	"github.com/tendecorte/turnos-api/internal/models"
)

// Worker drena el outbox y entrega por WhatsApp. Reintenta con backoff y tras
// agotar los intentos marca la fila como fallida, visible en GET /notify.
type Worker struct {
	store  Store
	sender Sender
	rdb    *redis.Client
	wake   chan struct{}
	retry  RetryPolicy
	tz     string

	pollInterval time.Duration
	batchSize    int

	logger zerolog.Logger
}

func NewWorker(d *Dispatcher, sender Sender, tz string, retry RetryPolicy, logger zerolog.Logger) *Worker {
	if retry.MaxAttempts <= 0 {
		retry = DefaultRetryPolicy()
	}

	return &Worker{
		store:        d.store,
		sender:       sender,
		rdb:          d.rdb,
		wake:         d.wake,
		retry:        retry,
		tz:           tz,
		pollInterval: 15 * time.Second,
		batchSize:    20,
		logger:       logger,
	}
}

// Run procesa hasta que el contexto se cancele.
func (w *Worker) Run(ctx context.Context) {
	if w.rdb != nil {
		go w.redisWakeLoop(ctx)
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		w.drain(ctx)

		select {
		case <-ctx.Done():
			return
		case <-w.wake:
		case <-ticker.C:
		}
	}
}

// redisWakeLoop traduce pushes de la cola redis en despertares del worker.
func (w *Worker) redisWakeLoop(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		_, err := w.rdb.BLPop(ctx, 2*time.Second, queueKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			w.logger.Warn().Err(err).Msg("redis blpop")
			select {
			case <-ctx.Done():
				return
			case <-time.After(2 * time.Second):
			}
			continue
		}

		select {
		case w.wake <- struct{}{}:
		default:
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	for {
		rows, err := w.store.NextPending(ctx, w.batchSize)
		if err != nil {
			w.logger.Error().Err(err).Msg("fetch pending notifications")
			return
		}
		if len(rows) == 0 {
			return
		}

		for i := range rows {
			if ctx.Err() != nil {
				return
			}
			w.deliver(ctx, &rows[i])
		}
	}
}

func (w *Worker) deliver(ctx context.Context, n *models.Notification) {
	template := templateFor(Kind(n.Kind))
	params := templateParams(n.ClientName, n.SlotFecha, w.tz)

	var lastErr error
	for attempt := 1; attempt <= w.retry.MaxAttempts; attempt++ {
		if delay := w.retry.Delay(attempt); delay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
		}

		lastErr = w.sender.SendTemplate(ctx, n.ToPhone, template, params)
		if lastErr == nil {
			metrics.IncNotification("enviado")
			if err := w.store.MarkSent(ctx, n.ID, attempt); err != nil {
				w.logger.Error().Err(err).Uint("id", n.ID).Msg("mark notification sent")
			}
			return
		}

		w.logger.Warn().Err(lastErr).
			Uint("id", n.ID).
			Int("attempt", attempt).
			Msg("whatsapp send failed")
	}

	metrics.IncNotification("fallido")
	if err := w.store.MarkFailed(ctx, n.ID, w.retry.MaxAttempts, lastErr.Error()); err != nil {
		w.logger.Error().Err(err).Uint("id", n.ID).Msg("mark notification failed")
	}
}
