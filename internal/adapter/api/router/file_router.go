package router

import (
	"github.com/labstack/echo/v4"

	"truthprevails/internal/adapter/api/handler"
	"truthprevails/internal/adapter/api/middleware"
)

func SetupFileRouter(e *echo.Echo, fileHandler *handler.FileHandler, authMiddleware *middleware.AuthMiddleware) {
	files := e.Group("/api/files")
	files.Use(authMiddleware.Authenticate)

	files.POST("/upload", fileHandler.Upload)
	files.GET("/my-files", fileHandler.ListMyFiles)
	files.GET("/:id", fileHandler.GetFile)
	files.DELETE("/:id", fileHandler.DeleteFile)
}
