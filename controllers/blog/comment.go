package blogController

import (
	"strconv"

	"edublog/database"
	"edublog/middleware"
	"edublog/models"
	blogModels "edublog/models/blog"
	blogValidators "edublog/validators/blog"

	"github.com/gofiber/fiber/v2"
)

// CreateComment attaches a new top-level comment to a post
func CreateComment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Locals("postSlug").(string)
	reqData := c.Locals("validatedComment").(*blogValidators.CommentRequest)
	db := database.Database.Db

	var post blogModels.Post
	if err := db.Where("slug = ? AND is_deleted = ?", slug, false).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	comment := blogModels.Comment{
		PostID:     post.ID,
		AuthorID:   userID,
		Content:    reqData.Content,
		IsApproved: true,
	}

	if err := db.Create(&comment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create comment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Comment created successfully!", comment)
}

// GetComments returns the approved comments of a post as a nested tree
func GetComments(c *fiber.Ctx) error {
	slug := c.Locals("postSlug").(string)
	db := database.Database.Db

	var post blogModels.Post
	if err := db.Where("slug = ? AND is_deleted = ?", slug, false).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	var comments []blogModels.Comment
	if err := db.Where("post_id = ? AND is_approved = ? AND is_deleted = ?", post.ID, true, false).
		Preload("Author").
		Order("created_at asc").
		Find(&comments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch comments!", nil)
	}

	type commentNode struct {
		blogModels.Comment
		Replies []*commentNode `json:"replies"`
	}

	nodes := make(map[uint]*commentNode, len(comments))
	var roots []*commentNode
	for i := range comments {
		comments[i].Author.Password = ""
		nodes[comments[i].ID] = &commentNode{Comment: comments[i], Replies: []*commentNode{}}
	}
	// Link in query order so roots and replies stay chronological
	for i := range comments {
		node := nodes[comments[i].ID]
		if node.ParentID != nil {
			if parent, ok := nodes[*node.ParentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comments fetched successfully!", roots)
}

// ReplyToComment creates a reply under an existing comment
func ReplyToComment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	commentID, err := strconv.Atoi(c.Params("id"))
	if err != nil || commentID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Comment ID!", nil)
	}

	reqData := c.Locals("validatedComment").(*blogValidators.CommentRequest)
	db := database.Database.Db

	var parent blogModels.Comment
	if err := db.Where("id = ? AND is_deleted = ?", commentID, false).First(&parent).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Comment not found!", nil)
	}

	parentID := parent.ID
	reply := blogModels.Comment{
		PostID:     parent.PostID,
		AuthorID:   userID,
		ParentID:   &parentID,
		Content:    reqData.Content,
		IsApproved: true,
	}

	if err := db.Create(&reply).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create reply!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Reply created successfully!", reply)
}

// ToggleCommentLike likes or unlikes a comment
func ToggleCommentLike(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	commentID, err := strconv.Atoi(c.Params("id"))
	if err != nil || commentID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Comment ID!", nil)
	}

	db := database.Database.Db

	var comment blogModels.Comment
	if err := db.Where("id = ? AND is_deleted = ?", commentID, false).First(&comment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Comment not found!", nil)
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	assoc := db.Model(&comment).Association("Likes")

	var existing []models.User
	if err := assoc.Find(&existing, "users.id = ?", userID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update comment!", nil)
	}

	if len(existing) > 0 {
		if err := assoc.Delete(&user); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update comment!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Comment unliked!", fiber.Map{"state": "unliked"})
	}

	if err := assoc.Append(&user); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update comment!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comment liked!", fiber.Map{"state": "liked"})
}
