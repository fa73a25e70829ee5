package employee

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the employee endpoints. writeGuards run in front of
// every form post, typically rate limiting and idempotency.
func RegisterRoutes(r gin.IRouter, handler *Handler, writeGuards ...gin.HandlerFunc) {
	employees := r.Group("/employees")
	{
		employees.GET("", handler.GetAll)
		employees.GET("/options", handler.GetOptions)
		employees.GET("/:id", handler.GetByID)

		employees.POST("", guarded(writeGuards, handler.Create)...)
		employees.POST("/validate", handler.Validate)
		employees.POST("/:id", guarded(writeGuards, handler.Update)...)
	}
}

func guarded(guards []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(guards)+1)
	chain = append(chain, guards...)
	return append(chain, h)
}
