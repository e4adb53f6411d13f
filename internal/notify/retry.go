package notify

import (
	"math"
	"time"
)

// RetryPolicy define backoff exponencial para reintentos de envío.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Factor      float64
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 4,
		BaseDelay:   2 * time.Second,
		MaxDelay:    time.Minute,
		Factor:      2,
	}
}

// Delay devuelve la espera previa al intento dado (1-based).
func (r RetryPolicy) Delay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	base := r.BaseDelay
	if base <= 0 {
		base = time.Second
	}
	factor := r.Factor
	if factor <= 0 {
		factor = 2
	}

	d := time.Duration(float64(base) * math.Pow(factor, float64(attempt-2)))
	if r.MaxDelay > 0 && d > r.MaxDelay {
		d = r.MaxDelay
	}
	return d
}
