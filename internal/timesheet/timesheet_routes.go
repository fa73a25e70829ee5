package timesheet

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r gin.IRouter, handler *Handler, writeGuards ...gin.HandlerFunc) {
	timesheets := r.Group("/timesheets")
	{
		timesheets.GET("", handler.GetAll)
		timesheets.GET("/calendar", handler.Calendar)
		timesheets.GET("/export", handler.Export)
		timesheets.GET("/:id", handler.GetByID)

		timesheets.POST("", guarded(writeGuards, handler.Create)...)
		timesheets.POST("/validate", handler.Validate)
		timesheets.POST("/:id", guarded(writeGuards, handler.Update)...)
	}
}

func guarded(guards []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(guards)+1)
	chain = append(chain, guards...)
	return append(chain, h)
}
