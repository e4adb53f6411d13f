package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tendecorte/turnos-api/internal/config"
	"github.com/tendecorte/turnos-api/internal/httperr"
	"github.com/tendecorte/turnos-api/internal/httpresp"
	"github.com/tendecorte/turnos-api/internal/notify"
	"github.com/tendecorte/turnos-api/internal/timezone"
)

// NotifyHandler expone reenvíos manuales y el estado del outbox. Los envíos
// automáticos salen de los use cases; esto existe para reintentar a mano y
// para ver qué falló.
type NotifyHandler struct {
	dispatcher *notify.Dispatcher
	outbox     notify.Store
	config     *config.Config
}

func NewNotifyHandler(dispatcher *notify.Dispatcher, outbox notify.Store, cfg *config.Config) *NotifyHandler {
	return &NotifyHandler{
		dispatcher: dispatcher,
		outbox:     outbox,
		config:     cfg,
	}
}

type ManualNotifyRequest struct {
	Nombre   string `json:"nombre" binding:"required"`
	Fecha    string `json:"fecha" binding:"required"`
	Telefono string `json:"telefono"`
}

func (h *NotifyHandler) SendReserved(c *gin.Context) {
	h.send(c, notify.KindReserved)
}

func (h *NotifyHandler) SendConfirmed(c *gin.Context) {
	h.send(c, notify.KindConfirmed)
}

func (h *NotifyHandler) SendCancelled(c *gin.Context) {
	h.send(c, notify.KindCancelled)
}

func (h *NotifyHandler) send(c *gin.Context, kind notify.Kind) {
	var req ManualNotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "faltan_campos", "Faltan campos obligatorios.")
		return
	}

	fecha, err := parseManualFecha(req.Fecha, h.config.Timezone)
	if err != nil {
		httperr.BadRequest(c, "fecha_invalida", "Fecha inválida.")
		return
	}

	// los avisos de reserva van siempre al peluquero
	to := req.Telefono
	if kind == notify.KindReserved || to == "" {
		to = h.config.BarberPhone
	}

	h.dispatcher.Dispatch(c.Request.Context(), notify.Message{
		Kind:       kind,
		ToPhone:    to,
		ClientName: req.Nombre,
		Fecha:      fecha,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notificación encolada",
	})
}

func (h *NotifyHandler) List(c *gin.Context) {
	rows, err := h.outbox.ListRecent(c.Request.Context(), 100)
	if err != nil {
		httperr.Internal(c, "error_interno", "Error al listar notificaciones.")
		return
	}

	httpresp.List(c, rows)
}

func parseManualFecha(raw, tz string) (time.Time, error) {
	loc := timezone.Location(tz)
	if t, err := time.ParseInLocation("2006-01-02T15:04", raw, loc); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04", raw, loc)
}
