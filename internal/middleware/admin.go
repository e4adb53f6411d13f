package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/tendecorte/turnos-api/internal/httperr"
)

// AdminMiddleware corre después de AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if admin, ok := c.Get(ContextIsAdmin); !ok || admin != true {
			httperr.Forbidden(c, "acceso_denegado", "Acceso denegado. Solo admin.")
			c.Abort()
			return
		}
		c.Next()
	}
}
