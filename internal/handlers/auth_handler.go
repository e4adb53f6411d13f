package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tendecorte/turnos-api/internal/config"
	"github.com/tendecorte/turnos-api/internal/httperr"
	"github.com/tendecorte/turnos-api/internal/models"
	"github.com/tendecorte/turnos-api/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Nombre   string `json:"nombre" binding:"required"`
	Apellido string `json:"apellido" binding:"required"`
	Telefono string `json:"telefono" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Telefono string `json:"telefono" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "faltan_campos", "Faltan campos obligatorios.")
		return
	}

	telefono, err := validators.NormalizePhone(req.Telefono, h.config.PhoneRegion)
	if err != nil {
		httperr.BadRequest(c, "telefono_invalido", "El teléfono no es válido.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("telefono = ?", telefono).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "telefono_registrado", "El teléfono ya está registrado.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "error_interno", "Error interno al registrar.")
		return
	}

	user := models.User{
		Nombre:       req.Nombre,
		Apellido:     req.Apellido,
		Telefono:     telefono,
		PasswordHash: string(hashed),
	}

	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "telefono_registrado", "El teléfono ya está registrado.")
			return
		}
		httperr.Internal(c, "error_interno", "Error interno al registrar.")
		return
	}

	token, err := h.generateToken(&user, false, 3*time.Hour)
	if err != nil {
		httperr.Internal(c, "error_interno", "Error al generar el token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Usuario creado correctamente",
		"usuario": user,
		"token":   token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "faltan_campos", "Faltan campos obligatorios.")
		return
	}

	telefono, err := validators.NormalizePhone(req.Telefono, h.config.PhoneRegion)
	if err != nil {
		httperr.BadRequest(c, "telefono_invalido", "El teléfono no es válido.")
		return
	}

	var user models.User
	if err := h.db.Where("telefono = ?", telefono).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "usuario_no_encontrado", "Usuario no encontrado.")
			return
		}
		httperr.Internal(c, "error_interno", "Error interno al iniciar sesión.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "credenciales_invalidas", "Contraseña incorrecta.")
		return
	}

	token, err := h.generateToken(&user, true, time.Hour)
	if err != nil {
		httperr.Internal(c, "error_interno", "Error al generar el token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"usuario": gin.H{
			"id":       user.ID,
			"telefono": user.Telefono,
			"admin":    user.Admin,
		},
	})
}

// --------- JWT ---------

// El token de registro no lleva el claim admin; el de login sí.
func (h *AuthHandler) generateToken(user *models.User, withAdmin bool, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.ID,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}
	if withAdmin {
		claims["admin"] = user.Admin
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
