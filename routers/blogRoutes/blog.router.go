package blogRoutes

import (
	blogControllers "edublog/controllers/blog"
	"edublog/middleware"
	blogValidators "edublog/validators/blog"

	"github.com/gofiber/fiber/v2"
)

// SetupBlogRoutes sets up post, comment and taxonomy routes. Reading published
// content is public; writing requires a login.
func SetupBlogRoutes(app *fiber.App) {
	postGroup := app.Group("/blog/post")

	postGroup.Post("/", middleware.JWTMiddleware, blogValidators.CreatePost(), blogControllers.CreatePost)
	postGroup.Get("/list", blogValidators.PostList(), blogControllers.GetPosts)
	postGroup.Get("/:slug", blogValidators.PostSlug(), blogControllers.GetPostBySlug)
	postGroup.Put("/:slug", middleware.JWTMiddleware, blogValidators.PostSlug(), blogValidators.UpdatePost(), blogControllers.UpdatePost)
	postGroup.Delete("/:slug", middleware.JWTMiddleware, blogValidators.PostSlug(), blogControllers.DeletePost)

	postGroup.Post("/:slug/view", blogValidators.PostSlug(), blogControllers.CountView)
	postGroup.Post("/:slug/like", middleware.JWTMiddleware, blogValidators.PostSlug(), blogControllers.ToggleLike)
	postGroup.Post("/:slug/bookmark", middleware.JWTMiddleware, blogValidators.PostSlug(), blogControllers.ToggleBookmark)
	postGroup.Post("/:slug/share", blogValidators.PostSlug(), blogValidators.SharePost(), blogControllers.SharePost)
	postGroup.Get("/:slug/related", blogValidators.PostSlug(), blogControllers.GetRelatedPosts)

	postGroup.Post("/:slug/comment", middleware.JWTMiddleware, blogValidators.PostSlug(), blogValidators.CreateComment(), blogControllers.CreateComment)
	postGroup.Get("/:slug/comments", blogValidators.PostSlug(), blogControllers.GetComments)

	commentGroup := app.Group("/blog/comment")
	commentGroup.Post("/:id/reply", middleware.JWTMiddleware, blogValidators.CreateComment(), blogControllers.ReplyToComment)
	commentGroup.Post("/:id/like", middleware.JWTMiddleware, blogControllers.ToggleCommentLike)

	taxonomyGroup := app.Group("/blog")
	taxonomyGroup.Post("/category", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), blogValidators.CreateNamed(), blogControllers.CreateCategory)
	taxonomyGroup.Get("/categories", blogControllers.GetCategories)
	taxonomyGroup.Get("/category/:slug/posts", blogControllers.GetCategoryPosts)
	taxonomyGroup.Post("/tag", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), blogValidators.CreateNamed(), blogControllers.CreateTag)
	taxonomyGroup.Get("/tags", blogControllers.GetTags)
}
