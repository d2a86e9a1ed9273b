package blogController

import (
	"edublog/database"
	"edublog/middleware"
	blogModels "edublog/models/blog"
	"edublog/utils"
	blogValidators "edublog/validators/blog"

	"github.com/gofiber/fiber/v2"
)

func CreateCategory(c *fiber.Ctx) error {
	reqData := c.Locals("validatedNamed").(*blogValidators.NameRequest)
	db := database.Database.Db

	category := blogModels.Category{
		Name:        reqData.Name,
		Slug:        utils.UniqueSlug(db, "categories", utils.Slugify(reqData.Name)),
		Description: reqData.Description,
	}

	if err := db.Create(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}

func GetCategories(c *fiber.Ctx) error {
	var categories []blogModels.Category
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("name asc").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}

// GetCategoryPosts lists published posts belonging to one category
func GetCategoryPosts(c *fiber.Ctx) error {
	slug := c.Params("slug")
	db := database.Database.Db

	var category blogModels.Category
	if err := db.Where("slug = ? AND is_deleted = ?", slug, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	var posts []blogModels.Post
	if err := db.Model(&blogModels.Post{}).
		Joins("JOIN post_categories ON post_categories.post_id = posts.id").
		Where("post_categories.category_id = ? AND posts.status = ? AND posts.is_deleted = ?",
			category.ID, blogModels.PostStatusPublished, false).
		Preload("Author").
		Order("posts.created_at desc").
		Find(&posts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch posts!", nil)
	}

	for i := range posts {
		posts[i].Author.Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Posts fetched successfully!", fiber.Map{
		"category": category,
		"posts":    posts,
	})
}

func CreateTag(c *fiber.Ctx) error {
	reqData := c.Locals("validatedNamed").(*blogValidators.NameRequest)
	db := database.Database.Db

	tag := blogModels.Tag{
		Name: reqData.Name,
		Slug: utils.UniqueSlug(db, "tags", utils.Slugify(reqData.Name)),
	}

	if err := db.Create(&tag).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create tag!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Tag created successfully!", tag)
}

func GetTags(c *fiber.Ctx) error {
	var tags []blogModels.Tag
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("name asc").Find(&tags).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tags!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tags fetched successfully!", tags)
}
