package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tendecorte/turnos-api/internal/config"
	"github.com/tendecorte/turnos-api/internal/handlers"
	infraRepo "github.com/tendecorte/turnos-api/internal/infra/repository"
	"github.com/tendecorte/turnos-api/internal/middleware"
	"github.com/tendecorte/turnos-api/internal/notify"
	"github.com/tendecorte/turnos-api/internal/timezone"
	ucSlot "github.com/tendecorte/turnos-api/internal/usecase/slot"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	dispatcher *notify.Dispatcher,
	outbox notify.Store,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	slotRepo := infraRepo.NewSlotGormRepository(db)
	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// USE CASES — TURNOS
	// ======================================================
	createSlotUC := ucSlot.NewRequestBooking(
		slotRepo,
		dispatcher,
		loc,
		cfg.BarberPhone,
	)

	confirmSlotUC := ucSlot.NewConfirmSlot(slotRepo, dispatcher)
	cancelSlotUC := ucSlot.NewCancelSlot(slotRepo, dispatcher)
	disableSlotUC := ucSlot.NewDisableSlot(slotRepo)
	enableSlotUC := ucSlot.NewEnableSlot(slotRepo)
	deleteSlotUC := ucSlot.NewDeleteSlot(slotRepo, dispatcher)
	listSlotsUC := ucSlot.NewListSlots(slotRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	slotHandler := handlers.NewSlotHandler(
		createSlotUC,
		confirmSlotUC,
		cancelSlotUC,
		disableSlotUC,
		enableSlotUC,
		deleteSlotUC,
		listSlotsUC,
	)

	notifyHandler := handlers.NewNotifyHandler(dispatcher, outbox, cfg)

	// ======================================================
	// AUTH
	// ======================================================
	auth := r.Group("/auth")
	auth.Use(middleware.RateLimitMiddleware(cfg.AuthRPS, cfg.AuthBurst))
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// ======================================================
	// TURNOS
	// ======================================================
	turnos := r.Group("/turnos")
	turnos.Use(middleware.AuthMiddleware(cfg))
	{
		turnos.GET("", slotHandler.List)
		turnos.POST("", slotHandler.Create)
		turnos.GET("/pendientes", slotHandler.ListPending)

		admin := turnos.Group("/")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.GET("/historial", slotHandler.History)
			admin.PUT("/:id/confirmar", slotHandler.Confirm)
			admin.PUT("/:id/cancelar", slotHandler.Cancel)
			admin.PUT("/:id/deshabilitar", slotHandler.Disable)
			admin.PUT("/:id/habilitar", slotHandler.Enable)
			admin.DELETE("/:id", slotHandler.Delete)
		}
	}

	// ======================================================
	// NOTIFY
	// ======================================================
	notifyGroup := r.Group("/notify")
	notifyGroup.Use(middleware.AuthMiddleware(cfg))
	{
		notifyGroup.POST("/reserved", notifyHandler.SendReserved)
		notifyGroup.POST("/confirmed", notifyHandler.SendConfirmed)
		notifyGroup.POST("/cancelled", notifyHandler.SendCancelled)

		notifyGroup.GET("", middleware.AdminMiddleware(), notifyHandler.List)
	}
}
