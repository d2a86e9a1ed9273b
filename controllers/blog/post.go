package blogController

import (
	"log"
	"time"

	"edublog/database"
	"edublog/middleware"
	"edublog/models"
	blogModels "edublog/models/blog"
	"edublog/utils"
	blogValidators "edublog/validators/blog"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreatePost creates a blog post authored by the caller
func CreatePost(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedPost").(*blogValidators.PostRequest)
	db := database.Database.Db

	post := blogModels.Post{
		Title:    reqData.Title,
		Slug:     utils.UniqueSlug(db, "posts", utils.Slugify(reqData.Title)),
		Content:  reqData.Content,
		Excerpt:  reqData.Excerpt,
		AuthorID: userID,
		Status:   reqData.Status,
	}
	if post.Status == "" {
		post.Status = blogModels.PostStatusDraft
	}
	if post.Excerpt == "" && post.Content != "" {
		post.Excerpt = utils.Excerpt(post.Content, 300)
	}

	switch post.Status {
	case blogModels.PostStatusPublished:
		now := time.Now()
		post.PublishedAt = &now
	case blogModels.PostStatusScheduled:
		publishAt, err := time.Parse(time.RFC3339, reqData.PublishAt)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid publish_at timestamp!", nil)
		}
		post.PublishAt = &publishAt
	}

	if len(reqData.CategoryIDs) > 0 {
		var categories []blogModels.Category
		db.Where("id IN ? AND is_deleted = ?", reqData.CategoryIDs, false).Find(&categories)
		post.Categories = categories
	}
	if len(reqData.TagIDs) > 0 {
		var tags []blogModels.Tag
		db.Where("id IN ? AND is_deleted = ?", reqData.TagIDs, false).Find(&tags)
		post.Tags = tags
	}

	if err := db.Create(&post).Error; err != nil {
		log.Printf("Error creating post: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Post created successfully!", post)
}

// GetPosts lists published posts with search and category/tag filters
func GetPosts(c *fiber.Ctx) error {
	reqData := c.Locals("validatedPostList").(*blogValidators.PostListRequest)
	db := database.Database.Db

	query := db.Model(&blogModels.Post{}).
		Where("posts.status = ? AND posts.is_deleted = ?", blogModels.PostStatusPublished, false)

	if reqData.Search != "" {
		like := "%" + reqData.Search + "%"
		query = query.Where("posts.title LIKE ? OR posts.content LIKE ?", like, like)
	}
	if reqData.Category != "" {
		query = query.
			Joins("JOIN post_categories ON post_categories.post_id = posts.id").
			Joins("JOIN categories ON categories.id = post_categories.category_id").
			Where("categories.slug = ?", reqData.Category)
	}
	if reqData.Tag != "" {
		query = query.
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.slug = ?", reqData.Tag)
	}

	var total int64
	query.Distinct("posts.id").Count(&total)

	var posts []blogModels.Post
	offset := (reqData.Page - 1) * reqData.Limit
	if err := query.Distinct().Preload("Author").Preload("Categories").Preload("Tags").
		Order("posts.created_at desc").
		Offset(offset).Limit(reqData.Limit).
		Find(&posts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch posts!", nil)
	}

	for i := range posts {
		posts[i].Author.Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Posts fetched successfully!", fiber.Map{
		"posts": posts,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	})
}

// GetPostBySlug returns one post with engagement counts
func GetPostBySlug(c *fiber.Ctx) error {
	slug := c.Locals("postSlug").(string)
	db := database.Database.Db

	var post blogModels.Post
	if err := db.Where("slug = ? AND is_deleted = ?", slug, false).
		Preload("Author").Preload("Categories").Preload("Tags").
		First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}
	post.Author.Password = ""

	var likeCount, bookmarkCount, commentCount int64
	db.Table("post_likes").Where("post_id = ?", post.ID).Count(&likeCount)
	db.Table("post_bookmarks").Where("post_id = ?", post.ID).Count(&bookmarkCount)
	db.Model(&blogModels.Comment{}).Where("post_id = ? AND is_approved = ? AND is_deleted = ?", post.ID, true, false).Count(&commentCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post fetched successfully!", fiber.Map{
		"post":           post,
		"like_count":     likeCount,
		"bookmark_count": bookmarkCount,
		"comment_count":  commentCount,
	})
}

// UpdatePost lets the author edit their post
func UpdatePost(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Locals("postSlug").(string)
	reqData := c.Locals("validatedPost").(*blogValidators.PostRequest)
	db := database.Database.Db

	var post blogModels.Post
	if err := db.Where("slug = ? AND is_deleted = ?", slug, false).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	if post.AuthorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the author can edit this post!", nil)
	}

	post.Title = reqData.Title
	post.Content = reqData.Content
	post.Excerpt = reqData.Excerpt
	if post.Excerpt == "" && post.Content != "" {
		post.Excerpt = utils.Excerpt(post.Content, 300)
	}
	if reqData.Status != "" && reqData.Status != post.Status {
		post.Status = reqData.Status
		if post.Status == blogModels.PostStatusPublished && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
	}

	if err := db.Save(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update post!", nil)
	}

	if len(reqData.CategoryIDs) > 0 {
		var categories []blogModels.Category
		db.Where("id IN ? AND is_deleted = ?", reqData.CategoryIDs, false).Find(&categories)
		db.Model(&post).Association("Categories").Replace(categories)
	}
	if len(reqData.TagIDs) > 0 {
		var tags []blogModels.Tag
		db.Where("id IN ? AND is_deleted = ?", reqData.TagIDs, false).Find(&tags)
		db.Model(&post).Association("Tags").Replace(tags)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post updated successfully!", post)
}

// DeletePost soft-deletes the author's post
func DeletePost(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Locals("postSlug").(string)
	db := database.Database.Db

	var post blogModels.Post
	if err := db.Where("slug = ? AND is_deleted = ?", slug, false).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	if post.AuthorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the author can delete this post!", nil)
	}

	post.IsDeleted = true
	if err := db.Save(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post deleted successfully!", nil)
}

// CountView increments the view counter; open to anonymous readers
func CountView(c *fiber.Ctx) error {
	slug := c.Locals("postSlug").(string)
	db := database.Database.Db

	result := db.Model(&blogModels.Post{}).
		Where("slug = ? AND is_deleted = ?", slug, false).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if result.Error != nil || result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "View counted!", nil)
}

// ToggleLike likes the post, or unlikes it when already liked
func ToggleLike(c *fiber.Ctx) error {
	return togglePostAssociation(c, "Likes", "liked", "unliked")
}

// ToggleBookmark bookmarks the post, or removes the bookmark
func ToggleBookmark(c *fiber.Ctx) error {
	return togglePostAssociation(c, "Bookmarks", "bookmarked", "unbookmarked")
}

func togglePostAssociation(c *fiber.Ctx, association, onMsg, offMsg string) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Locals("postSlug").(string)
	db := database.Database.Db

	var post blogModels.Post
	if err := db.Where("slug = ? AND is_deleted = ?", slug, false).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	assoc := db.Model(&post).Association(association)

	var existing []models.User
	if err := assoc.Find(&existing, "users.id = ?", userID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update post!", nil)
	}

	if len(existing) > 0 {
		if err := assoc.Delete(&user); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update post!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Post "+offMsg+"!", fiber.Map{"state": offMsg})
	}

	if err := assoc.Append(&user); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update post!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post "+onMsg+"!", fiber.Map{"state": onMsg})
}

// SharePost records a share to an external platform
func SharePost(c *fiber.Ctx) error {
	slug := c.Locals("postSlug").(string)
	reqData := c.Locals("validatedShare").(*blogValidators.ShareRequest)
	db := database.Database.Db

	var post blogModels.Post
	if err := db.Where("slug = ? AND is_deleted = ?", slug, false).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	share := blogModels.Share{
		PostID:   post.ID,
		Platform: reqData.Platform,
	}
	if userID, ok := c.Locals("userId").(uint); ok {
		share.SharedByID = &userID
	}

	if err := db.Create(&share).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record share!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post shared!", share)
}

// GetRelatedPosts returns up to 5 published posts sharing a tag or category
func GetRelatedPosts(c *fiber.Ctx) error {
	slug := c.Locals("postSlug").(string)
	db := database.Database.Db

	var post blogModels.Post
	if err := db.Where("slug = ? AND is_deleted = ?", slug, false).
		Preload("Categories").Preload("Tags").
		First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	categoryIDs := make([]uint, 0, len(post.Categories))
	for _, cat := range post.Categories {
		categoryIDs = append(categoryIDs, cat.ID)
	}
	tagIDs := make([]uint, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tagIDs = append(tagIDs, tag.ID)
	}

	if len(categoryIDs) == 0 && len(tagIDs) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Related posts fetched successfully!", []blogModels.Post{})
	}

	query := db.Model(&blogModels.Post{}).
		Where("posts.id <> ? AND posts.status = ? AND posts.is_deleted = ?", post.ID, blogModels.PostStatusPublished, false).
		Joins("LEFT JOIN post_categories ON post_categories.post_id = posts.id").
		Joins("LEFT JOIN post_tags ON post_tags.post_id = posts.id")

	switch {
	case len(categoryIDs) > 0 && len(tagIDs) > 0:
		query = query.Where("post_categories.category_id IN ? OR post_tags.tag_id IN ?", categoryIDs, tagIDs)
	case len(categoryIDs) > 0:
		query = query.Where("post_categories.category_id IN ?", categoryIDs)
	default:
		query = query.Where("post_tags.tag_id IN ?", tagIDs)
	}

	var related []blogModels.Post
	if err := query.Distinct("posts.*").Limit(5).Find(&related).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch related posts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Related posts fetched successfully!", related)
}
