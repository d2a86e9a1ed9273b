package blogValidator

import (
	"strings"

	"edublog/middleware"
	blogModels "edublog/models/blog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// PostRequest is the validated create/update payload for posts
type PostRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Content     string `json:"content" validate:"required"`
	Excerpt     string `json:"excerpt"`
	Status      string `json:"status" validate:"omitempty,oneof=draft scheduled published"`
	PublishAt   string `json:"publish_at"` // RFC3339, required when status=scheduled
	CategoryIDs []uint `json:"category_ids"`
	TagIDs      []uint `json:"tag_ids"`
}

func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errors[strings.ToLower(fe.Field())] = "Invalid value for " + strings.ToLower(fe.Field()) + " (" + fe.Tag() + ")"
		}
	} else {
		errors["body"] = "Invalid request body!"
	}
	return errors
}

func CreatePost() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PostRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		if reqData.Status == blogModels.PostStatusScheduled && strings.TrimSpace(reqData.PublishAt) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"publish_at": "Publish time is required for scheduled posts!",
			})
		}

		c.Locals("validatedPost", reqData)
		return c.Next()
	}
}

func UpdatePost() fiber.Handler {
	return CreatePost()
}

func PostSlug() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := strings.TrimSpace(c.Params("slug"))
		if slug == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Post slug is required!", nil)
		}
		c.Locals("postSlug", slug)
		return c.Next()
	}
}

// PostListRequest carries the validated list filters
type PostListRequest struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Tag      string
}

func PostList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page     *int   `query:"page"`
			Limit    *int   `query:"limit"`
			Search   string `query:"search"`
			Category string `query:"category"`
			Tag      string `query:"tag"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		list := &PostListRequest{Page: 1, Limit: 10, Search: reqData.Search, Category: reqData.Category, Tag: reqData.Tag}
		if reqData.Page != nil {
			if *reqData.Page < 1 {
				return middleware.ValidationErrorResponse(c, map[string]string{"page": "Page must be greater than 0!"})
			}
			list.Page = *reqData.Page
		}
		if reqData.Limit != nil {
			if *reqData.Limit < 1 || *reqData.Limit > 100 {
				return middleware.ValidationErrorResponse(c, map[string]string{"limit": "Limit must be between 1 and 100!"})
			}
			list.Limit = *reqData.Limit
		}

		c.Locals("validatedPostList", list)
		return c.Next()
	}
}

// ShareRequest is the validated share payload
type ShareRequest struct {
	Platform string `json:"platform" validate:"required,oneof=facebook twitter linkedin telegram whatsapp"`
}

func SharePost() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ShareRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Platform) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Platform is required!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedShare", reqData)
		return c.Next()
	}
}

// CommentRequest is the validated comment payload
type CommentRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

func CreateComment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CommentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedComment", reqData)
		return c.Next()
	}
}

// NameRequest is the validated payload for tags and categories
type NameRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description"`
}

func CreateNamed() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(NameRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedNamed", reqData)
		return c.Next()
	}
}
