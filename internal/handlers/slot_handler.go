package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tendecorte/turnos-api/internal/httperr"
	"github.com/tendecorte/turnos-api/internal/metrics"
	ucSlot "github.com/tendecorte/turnos-api/internal/usecase/slot"
)

// ======================================================
// HANDLER
// ======================================================

type SlotHandler struct {
	createUC  *ucSlot.RequestBooking
	confirmUC *ucSlot.ConfirmSlot
	cancelUC  *ucSlot.CancelSlot
	disableUC *ucSlot.DisableSlot
	enableUC  *ucSlot.EnableSlot
	deleteUC  *ucSlot.DeleteSlot
	listUC    *ucSlot.ListSlots
}

func NewSlotHandler(
	createUC *ucSlot.RequestBooking,
	confirmUC *ucSlot.ConfirmSlot,
	cancelUC *ucSlot.CancelSlot,
	disableUC *ucSlot.DisableSlot,
	enableUC *ucSlot.EnableSlot,
	deleteUC *ucSlot.DeleteSlot,
	listUC *ucSlot.ListSlots,
) *SlotHandler {
	return &SlotHandler{
		createUC:  createUC,
		confirmUC: confirmUC,
		cancelUC:  cancelUC,
		disableUC: disableUC,
		enableUC:  enableUC,
		deleteUC:  deleteUC,
		listUC:    listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSlotRequest struct {
	Fecha string `json:"fecha" binding:"required"`

	// Puntero: 0 (turno fantasma) es válido, ausente no.
	UsuarioID *uint `json:"usuarioId" binding:"required"`

	Deshabilitado bool `json:"deshabilitado"`
}

// ======================================================
// CREATE
// ======================================================

func (h *SlotHandler) Create(c *gin.Context) {
	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "faltan_campos", "Faltan campos obligatorios.")
		return
	}

	s, err := h.createUC.Execute(c.Request.Context(), ucSlot.RequestBookingInput{
		Fecha:         req.Fecha,
		UsuarioID:     *req.UsuarioID,
		Deshabilitado: req.Deshabilitado,
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "usuario_no_encontrado"):
			httperr.NotFound(c, "usuario_no_encontrado", "Usuario no encontrado.")
		case httperr.IsBusiness(err, "fecha_invalida"):
			httperr.BadRequest(c, "fecha_invalida", "Fecha inválida.")
		case httperr.IsBusiness(err, "horario_reservado"):
			metrics.IncBooking("conflicto")
			httperr.BadRequest(c, "horario_reservado", "El horario ya está reservado.")
		default:
			httperr.Internal(c, "error_interno", "Error interno al crear el turno.")
		}
		return
	}

	metrics.IncBooking("creado")

	c.JSON(http.StatusCreated, gin.H{
		"message": "Turno creado",
		"turno":   s,
	})
}

// ======================================================
// LIST
// ======================================================

func (h *SlotHandler) List(c *gin.Context) {
	slots, err := h.listUC.All(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "error_interno", "Error al listar turnos.")
		return
	}

	c.JSON(http.StatusOK, slots)
}

func (h *SlotHandler) ListPending(c *gin.Context) {
	slots, err := h.listUC.Pending(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "error_interno", "Error al listar turnos.")
		return
	}

	c.JSON(http.StatusOK, slots)
}

func (h *SlotHandler) History(c *gin.Context) {
	rows, err := h.listUC.History(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "error_interno", "Error al listar el historial.")
		return
	}

	c.JSON(http.StatusOK, rows)
}

// ======================================================
// STATE CHANGES (admin)
// ======================================================

func (h *SlotHandler) Confirm(c *gin.Context) {
	id, ok := slotID(c)
	if !ok {
		return
	}

	s, err := h.confirmUC.Execute(c.Request.Context(), id)
	if err != nil {
		writeSlotError(c, err, "Error al confirmar el turno.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Turno confirmado",
		"turno":   s,
	})
}

func (h *SlotHandler) Cancel(c *gin.Context) {
	id, ok := slotID(c)
	if !ok {
		return
	}

	s, err := h.cancelUC.Execute(c.Request.Context(), id)
	if err != nil {
		writeSlotError(c, err, "Error al cancelar el turno.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Turno cancelado correctamente",
		"turno":   s,
	})
}

func (h *SlotHandler) Disable(c *gin.Context) {
	id, ok := slotID(c)
	if !ok {
		return
	}

	s, err := h.disableUC.Execute(c.Request.Context(), id)
	if err != nil {
		writeSlotError(c, err, "Error al deshabilitar el turno.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Turno deshabilitado correctamente",
		"turno":   s,
	})
}

func (h *SlotHandler) Enable(c *gin.Context) {
	id, ok := slotID(c)
	if !ok {
		return
	}

	s, err := h.enableUC.Execute(c.Request.Context(), id)
	if err != nil {
		writeSlotError(c, err, "Error al habilitar el turno.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Turno habilitado correctamente",
		"turno":   s,
	})
}

func (h *SlotHandler) Delete(c *gin.Context) {
	id, ok := slotID(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id); err != nil {
		writeSlotError(c, err, "Error al eliminar el turno.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Turno eliminado"})
}

// ======================================================
// HELPERS
// ======================================================

func slotID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "id_invalido", "Id de turno inválido.")
		return 0, false
	}
	return uint(id), true
}

func writeSlotError(c *gin.Context, err error, internalMsg string) {
	if httperr.IsBusiness(err, "turno_no_encontrado") {
		httperr.NotFound(c, "turno_no_encontrado", "Turno no encontrado.")
		return
	}
	httperr.Internal(c, "error_interno", internalMsg)
}
