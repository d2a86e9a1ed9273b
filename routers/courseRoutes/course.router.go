package courseRoutes

import (
	courseControllers "edublog/controllers/course"
	"edublog/middleware"
	courseValidators "edublog/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up catalog, enrollment, review, discussion and note
// routes. Browsing the catalog is public; everything else needs a login.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog
	courseGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole("INSTRUCTOR", "ADMIN"), courseValidators.CreateCourse(), courseControllers.CreateCourse)
	courseGroup.Get("/list", courseValidators.Pagination(), courseControllers.GetCourses)
	courseGroup.Get("/featured", courseControllers.GetFeaturedCourses)
	courseGroup.Get("/testimonials", courseControllers.GetTestimonials)
	courseGroup.Get("/:id", courseValidators.CourseID(), courseControllers.GetCourseDetails)
	courseGroup.Put("/:id", middleware.JWTMiddleware, courseValidators.CourseID(), courseValidators.CreateCourse(), courseControllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, courseValidators.CourseID(), courseControllers.DeleteCourse)

	// Lessons
	courseGroup.Post("/:id/lesson", middleware.JWTMiddleware, courseValidators.CourseID(), courseValidators.CreateLesson(), courseControllers.CreateLesson)
	courseGroup.Get("/:id/lessons", courseValidators.CourseID(), courseControllers.GetLessons)
	courseGroup.Get("/:course_id/lesson/:lesson_id", middleware.JWTMiddleware, courseValidators.CourseLessonIDs(), courseControllers.GetLessonDetails)
	courseGroup.Delete("/:course_id/lesson/:lesson_id", middleware.JWTMiddleware, courseValidators.CourseLessonIDs(), courseControllers.DeleteLesson)

	// Enrollment and progress
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, courseValidators.CourseID(), courseControllers.EnrollInCourse)
	courseGroup.Get("/:id/progress", middleware.JWTMiddleware, courseValidators.CourseID(), courseControllers.GetCourseProgress)
	courseGroup.Post("/:course_id/lesson/:lesson_id/complete", middleware.JWTMiddleware, courseValidators.CourseLessonIDs(), courseControllers.CompleteLesson)

	// Reviews
	courseGroup.Post("/:id/review", middleware.JWTMiddleware, courseValidators.CourseID(), courseValidators.CreateReview(), courseControllers.SubmitReview)
	courseGroup.Get("/:id/reviews", courseValidators.CourseID(), courseControllers.GetReviews)

	// Discussions
	courseGroup.Post("/:id/discussion", middleware.JWTMiddleware, courseValidators.CourseID(), courseValidators.CreateDiscussion(), courseControllers.CreateDiscussion)
	courseGroup.Get("/:id/discussions", courseValidators.CourseID(), courseControllers.GetDiscussions)

	discussionGroup := app.Group("/discussion")
	discussionGroup.Post("/:id/reply", middleware.JWTMiddleware, courseValidators.CreateReply(), courseControllers.ReplyToDiscussion)

	// Lesson notes
	courseGroup.Post("/:course_id/lesson/:lesson_id/note", middleware.JWTMiddleware, courseValidators.CourseLessonIDs(), courseValidators.CreateNote(), courseControllers.CreateNote)
	courseGroup.Get("/:course_id/lesson/:lesson_id/notes", middleware.JWTMiddleware, courseValidators.CourseLessonIDs(), courseControllers.GetNotes)
	courseGroup.Get("/:course_id/lesson/:lesson_id/notes/shared", middleware.JWTMiddleware, courseValidators.CourseLessonIDs(), courseControllers.GetSharedNotes)
	courseGroup.Get("/:course_id/lesson/:lesson_id/notes/tags", middleware.JWTMiddleware, courseValidators.CourseLessonIDs(), courseControllers.GetNoteTags)
	courseGroup.Get("/:course_id/lesson/:lesson_id/notes/export", middleware.JWTMiddleware, courseValidators.CourseLessonIDs(), courseControllers.ExportNotes)

	noteGroup := app.Group("/note")
	noteGroup.Post("/:note_id/share", middleware.JWTMiddleware, courseValidators.ShareNote(), courseControllers.ShareNoteWithUsers)

	// User enrollments
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, courseControllers.GetEnrollments)
}
