package courseController

import (
	"strconv"

	"edublog/database"
	"edublog/middleware"
	courseModels "edublog/models/course"
	courseValidators "edublog/validators/course"

	"github.com/gofiber/fiber/v2"
)

// CreateDiscussion opens a thread on a course; enrolled users only
func CreateDiscussion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	reqData := c.Locals("validatedDiscussion").(*courseValidators.DiscussionRequest)
	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled in the course to participate in discussions!", nil)
	}

	discussion := courseModels.Discussion{
		CourseID: courseID,
		UserID:   userID,
		Title:    reqData.Title,
		Content:  reqData.Content,
	}

	if err := db.Create(&discussion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create discussion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Discussion created successfully!", discussion)
}

// GetDiscussions lists a course's threads with replies
func GetDiscussions(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var discussions []courseModels.Discussion
	if err := db.Where("course_id = ?", courseID).
		Preload("User").Preload("Replies").Preload("Replies.User").
		Order("created_at desc").
		Find(&discussions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch discussions!", nil)
	}

	for i := range discussions {
		discussions[i].User.Password = ""
		for j := range discussions[i].Replies {
			discussions[i].Replies[j].User.Password = ""
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discussions fetched successfully!", discussions)
}

// ReplyToDiscussion adds a reply; enrollment is checked against the
// discussion's course
func ReplyToDiscussion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	discussionID, err := strconv.Atoi(c.Params("id"))
	if err != nil || discussionID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Discussion ID!", nil)
	}

	reqData := c.Locals("validatedReply").(*courseValidators.ReplyRequest)
	db := database.Database.Db

	var discussion courseModels.Discussion
	if err := db.Where("id = ?", discussionID).First(&discussion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Discussion not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, discussion.CourseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled in the course to reply to discussions!", nil)
	}

	reply := courseModels.DiscussionReply{
		DiscussionID: discussion.ID,
		UserID:       userID,
		Content:      reqData.Content,
	}

	if err := db.Create(&reply).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create reply!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Reply created successfully!", reply)
}
