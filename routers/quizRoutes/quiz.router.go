package quizRoutes

import (
	quizControllers "edublog/controllers/quiz"
	"edublog/middleware"
	courseValidators "edublog/validators/course"
	quizValidators "edublog/validators/quiz"

	"github.com/gofiber/fiber/v2"
)

// SetupQuizRoutes sets up quiz management and attempt routes
func SetupQuizRoutes(app *fiber.App) {
	lessonGroup := app.Group("/course")
	lessonGroup.Post("/:course_id/lesson/:lesson_id/quiz", middleware.JWTMiddleware, courseValidators.CourseLessonIDs(), quizValidators.CreateQuiz(), quizControllers.CreateQuiz)
	lessonGroup.Get("/:course_id/lesson/:lesson_id/quizzes", middleware.JWTMiddleware, courseValidators.CourseLessonIDs(), quizControllers.GetLessonQuizzes)

	quizGroup := app.Group("/quiz")
	quizGroup.Get("/:quiz_id", middleware.JWTMiddleware, quizValidators.QuizID(), quizControllers.GetQuiz)
	quizGroup.Post("/:quiz_id/question", middleware.JWTMiddleware, quizValidators.QuizID(), quizValidators.CreateQuestion(), quizControllers.AddQuestion)

	quizGroup.Post("/:quiz_id/attempt", middleware.JWTMiddleware, quizValidators.QuizID(), quizControllers.StartAttempt)
	quizGroup.Get("/:quiz_id/attempts", middleware.JWTMiddleware, quizValidators.QuizID(), quizControllers.GetAttempts)
	quizGroup.Get("/:quiz_id/attempt/:attempt_id", middleware.JWTMiddleware, quizValidators.QuizAttemptIDs(), quizControllers.GetAttemptDetails)
	quizGroup.Post("/:quiz_id/attempt/:attempt_id/submit", middleware.JWTMiddleware, quizValidators.QuizAttemptIDs(), quizValidators.SubmitAttempt(), quizControllers.SubmitAttempt)
}
