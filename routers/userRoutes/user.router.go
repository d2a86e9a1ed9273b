package userRoutes

import (
	userControllers "edublog/controllers/userControllers"
	"edublog/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, userControllers.GetProfile)
	userGroup.Put("/profile", middleware.JWTMiddleware, userControllers.UpdateProfile)
	userGroup.Post("/profile/avatar", middleware.JWTMiddleware, userControllers.UploadAvatar)
}
