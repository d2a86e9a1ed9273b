package courseValidator

import (
	"strconv"
	"strings"

	"edublog/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// idParam validates a positive integer route parameter and stores it in Locals
func idParam(param, localKey, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params(param))
		if raw == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" is required!", nil)
		}

		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+"!", nil)
		}

		c.Locals(localKey, uint(id))
		return c.Next()
	}
}

func CourseID() fiber.Handler { return idParam("id", "courseID", "Course ID") }

func CourseLessonIDs() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(strings.TrimSpace(c.Params("course_id")))
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		lessonID, err := strconv.Atoi(strings.TrimSpace(c.Params("lesson_id")))
		if err != nil || lessonID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		c.Locals("courseID", uint(courseID))
		c.Locals("lessonID", uint(lessonID))
		return c.Next()
	}
}

// CourseRequest is the validated create/update payload for courses
type CourseRequest struct {
	Title              string   `json:"title" validate:"required,min=3,max=200"`
	Description        string   `json:"description" validate:"required,min=5"`
	CategoryID         *uint    `json:"category_id"`
	Price              float64  `json:"price" validate:"gte=0"`
	Level              string   `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Duration           uint     `json:"duration"`
	Prerequisites      string   `json:"prerequisites"`
	LearningObjectives []string `json:"learning_objectives"`
	Tags               []string `json:"tags"`
	IsPublished        bool     `json:"is_published"`
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fe := range err.(validator.ValidationErrors) {
				errors[strings.ToLower(fe.Field())] = "Invalid value for " + strings.ToLower(fe.Field()) + " (" + fe.Tag() + ")"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// LessonRequest is the validated create/update payload for lessons
type LessonRequest struct {
	Title       string                 `json:"title" validate:"required,min=3,max=200"`
	Description string                 `json:"description"`
	Content     string                 `json:"content"`
	Order       uint                   `json:"order" validate:"required,gt=0"`
	Duration    uint                   `json:"duration"`
	VideoURL    string                 `json:"video_url" validate:"omitempty,url"`
	IsPreview   bool                   `json:"is_preview"`
	Resources   map[string]interface{} `json:"resources"`
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LessonRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fe := range err.(validator.ValidationErrors) {
				errors[strings.ToLower(fe.Field())] = "Invalid value for " + strings.ToLower(fe.Field()) + " (" + fe.Tag() + ")"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// Pagination validates optional page/limit query parameters
func Pagination() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `query:"page"`
			Limit *int `query:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		page := 1
		limit := 10
		if reqData.Page != nil {
			if *reqData.Page < 1 {
				return middleware.ValidationErrorResponse(c, map[string]string{"page": "Page must be greater than 0!"})
			}
			page = *reqData.Page
		}
		if reqData.Limit != nil {
			if *reqData.Limit < 1 || *reqData.Limit > 100 {
				return middleware.ValidationErrorResponse(c, map[string]string{"limit": "Limit must be between 1 and 100!"})
			}
			limit = *reqData.Limit
		}

		c.Locals("page", page)
		c.Locals("limit", limit)
		return c.Next()
	}
}

// ReviewRequest is the validated review payload
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=1"`
}

func CreateReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ReviewRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"rating": "Rating must be between 1 and 5 and a comment is required!",
			})
		}

		c.Locals("validatedReview", reqData)
		return c.Next()
	}
}

// DiscussionRequest is the validated discussion payload
type DiscussionRequest struct {
	Title   string `json:"title" validate:"required,min=3,max=200"`
	Content string `json:"content" validate:"required,min=1"`
}

func CreateDiscussion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(DiscussionRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fe := range err.(validator.ValidationErrors) {
				errors[strings.ToLower(fe.Field())] = "Invalid value for " + strings.ToLower(fe.Field()) + " (" + fe.Tag() + ")"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDiscussion", reqData)
		return c.Next()
	}
}

// ReplyRequest is the validated discussion reply payload
type ReplyRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

func CreateReply() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ReplyRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"content": "Content is required!"})
		}

		c.Locals("validatedReply", reqData)
		return c.Next()
	}
}

// NoteRequest is the validated note payload
type NoteRequest struct {
	Content  string `json:"content" validate:"required,min=1"`
	Tags     string `json:"tags"`
	IsShared bool   `json:"is_shared"`
}

func CreateNote() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(NoteRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"content": "Content is required!"})
		}

		c.Locals("validatedNote", reqData)
		return c.Next()
	}
}

// ShareNoteRequest is the validated note sharing payload
type ShareNoteRequest struct {
	UserIDs []uint `json:"user_ids" validate:"required,min=1"`
}

func ShareNote() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ShareNoteRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.UserIDs) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"user_ids": "At least one user is required!"})
		}

		c.Locals("validatedShareNote", reqData)
		return c.Next()
	}
}
