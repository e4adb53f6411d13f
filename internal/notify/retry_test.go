package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryPolicyDelay(t *testing.T) {
	p := RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   time.Second,
		MaxDelay:    5 * time.Second,
		Factor:      2,
	}

	assert.Equal(t, time.Duration(0), p.Delay(1))
	assert.Equal(t, time.Second, p.Delay(2))
	assert.Equal(t, 2*time.Second, p.Delay(3))
	assert.Equal(t, 4*time.Second, p.Delay(4))
	// clamp en MaxDelay
	assert.Equal(t, 5*time.Second, p.Delay(5))
	assert.Equal(t, 5*time.Second, p.Delay(10))
}

func TestRetryPolicyDefaults(t *testing.T) {
	var p RetryPolicy
	assert.Equal(t, time.Duration(0), p.Delay(1))
	assert.Equal(t, time.Second, p.Delay(2))
	assert.Equal(t, 2*time.Second, p.Delay(3))
}

func TestTemplateParamsLocalTime(t *testing.T) {
	// 12:00 UTC = 09:00 en Buenos Aires
	fecha := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	params := templateParams("Juan Pérez", fecha, "America/Argentina/Buenos_Aires")

	assert.Equal(t, []string{"Juan Pérez", "10/01/2024", "09:00"}, params)
}
