package courseController

import (
	"log"

	"edublog/database"
	"edublog/middleware"
	"edublog/models"
	courseModels "edublog/models/course"
	"edublog/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EnrollInCourse enrolls the caller and eagerly creates one incomplete
// LessonProgress row per lesson, all in one transaction
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	// Check if user is already enrolled
	var existingEnrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
	}

	enrollment := courseModels.Enrollment{
		UserID:   userID,
		CourseID: courseID,
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}

		var lessons []courseModels.Lesson
		if err := tx.Where("course_id = ? AND is_deleted = ?", courseID, false).Find(&lessons).Error; err != nil {
			return err
		}
		if len(lessons) == 0 {
			return nil
		}

		progressRows := make([]courseModels.LessonProgress, len(lessons))
		for i, lesson := range lessons {
			progressRows[i] = courseModels.LessonProgress{
				EnrollmentID: enrollment.ID,
				LessonID:     lesson.ID,
			}
		}
		return tx.Create(&progressRows).Error
	})
	if err != nil {
		log.Printf("Error enrolling user %d in course %d: %v", userID, courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", enrollment)
}

// GetEnrollments lists the caller's enrollments with derived progress
func GetEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Where("user_id = ?", userID).Preload("Course").
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type enrollmentWithProgress struct {
		courseModels.Enrollment
		CompletedLessons int64   `json:"completed_lessons"`
		TotalLessons     int64   `json:"total_lessons"`
		Progress         float64 `json:"progress"`
	}

	result := make([]enrollmentWithProgress, len(enrollments))
	for i := range enrollments {
		completed, total, err := courseModels.CountLessonProgress(db, &enrollments[i])
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
		}
		result[i] = enrollmentWithProgress{
			Enrollment:       enrollments[i],
			CompletedLessons: completed,
			TotalLessons:     total,
			Progress:         courseModels.ProgressPercent(completed, total),
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", result)
}

// GetCourseProgress returns the caller's aggregate progress in one course.
// The percentage is always derived, never stored.
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	completed, total, err := courseModels.CountLessonProgress(db, &enrollment)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	var progressRows []courseModels.LessonProgress
	if err := db.Where("enrollment_id = ?", enrollment.ID).Find(&progressRows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":        enrollment,
		"completed_lessons": completed,
		"total_lessons":     total,
		"progress":          courseModels.ProgressPercent(completed, total),
		"lesson_progress":   progressRows,
	})
}

// CompleteLesson marks a lesson done for the caller and runs the
// enrollment-completion cascade
func CompleteLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	lessonID := c.Locals("lessonID").(uint)
	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var progress *courseModels.LessonProgress
	var courseCompleted bool
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		progress, courseCompleted, txErr = courseModels.CompleteLessonProgress(tx, &enrollment, lesson.ID)
		return txErr
	})
	if err != nil {
		log.Printf("Error completing lesson %d for user %d: %v", lessonID, userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	if courseCompleted {
		go notifyCourseCompleted(userID, enrollment.CourseID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed!", fiber.Map{
		"progress":         progress,
		"course_completed": courseCompleted,
	})
}

// notifyCourseCompleted fires the completion email and webhook after the
// enrollment flips; runs outside the transaction
func notifyCourseCompleted(userID, courseID uint) {
	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return
	}
	var course courseModels.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return
	}

	if err := utils.SendCourseCompletionEmail(user.Name, user.Email, course.Title); err != nil {
		log.Printf("Error sending completion email: %v", err)
	}
	utils.NotifyWebhook("course.completed", userID, map[string]interface{}{
		"course_id":    courseID,
		"course_title": course.Title,
	})
}
