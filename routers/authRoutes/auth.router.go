package authRoutes

import (
	authControllers "edublog/controllers/auth"
	"edublog/middleware"
	authValidators "edublog/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Patch("/verify/otp", authValidators.VerifyOTP(), authControllers.VerifyOTP)
	authGroup.Get("/login/history", middleware.JWTMiddleware, authControllers.LoginHistory)
}
