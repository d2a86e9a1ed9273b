package courseController

import (
	"encoding/json"
	"log"

	"edublog/database"
	"edublog/middleware"
	courseModels "edublog/models/course"
	"edublog/utils"
	courseValidators "edublog/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func jsonColumn(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	raw, _ := json.Marshal(values)
	return datatypes.JSON(raw)
}

// CreateCourse creates a course owned by the calling instructor
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedCourse").(*courseValidators.CourseRequest)
	db := database.Database.Db

	course := courseModels.Course{
		Title:              reqData.Title,
		Slug:               utils.UniqueSlug(db, "courses", utils.Slugify(reqData.Title)),
		Description:        reqData.Description,
		InstructorID:       userID,
		CategoryID:         reqData.CategoryID,
		Price:              reqData.Price,
		Level:              reqData.Level,
		Duration:           reqData.Duration,
		Prerequisites:      reqData.Prerequisites,
		LearningObjectives: jsonColumn(reqData.LearningObjectives),
		Tags:               jsonColumn(reqData.Tags),
		IsPublished:        reqData.IsPublished,
	}
	if course.Level == "" {
		course.Level = courseModels.LevelBeginner
	}

	if err := db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// GetCourses lists published courses with their recomputed ratings
func GetCourses(c *fiber.Ctx) error {
	page := c.Locals("page").(int)
	limit := c.Locals("limit").(int)
	offset := (page - 1) * limit

	db := database.Database.Db

	query := db.Model(&courseModels.Course{}).Where("is_published = ? AND is_deleted = ?", true, false)

	var total int64
	query.Count(&total)

	var courses []courseModels.Course
	if err := query.Preload("Instructor").Preload("Category").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	type courseWithRating struct {
		courseModels.Course
		Rating      float64 `json:"rating"`
		RatingCount int64   `json:"rating_count"`
	}

	result := make([]courseWithRating, len(courses))
	for i, course := range courses {
		course.Instructor.Password = ""
		rating, count := courseRating(course.ID)
		result[i] = courseWithRating{Course: course, Rating: rating, RatingCount: count}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails returns one course with lessons, derived rating and student count
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).
		Preload("Instructor").Preload("Category").
		Preload("Lessons", func(tx *gorm.DB) *gorm.DB { return tx.Where("is_deleted = ?", false).Order("lesson_order asc") }).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	course.Instructor.Password = ""

	rating, ratingCount := courseRating(course.ID)

	var studentCount int64
	db.Model(&courseModels.Enrollment{}).Where("course_id = ?", course.ID).Count(&studentCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":        course,
		"rating":        rating,
		"rating_count":  ratingCount,
		"student_count": studentCount,
	})
}

// UpdateCourse lets the owning instructor edit course fields
func UpdateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	reqData := c.Locals("validatedCourse").(*courseValidators.CourseRequest)
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course instructor can edit this course!", nil)
	}

	course.Title = reqData.Title
	course.Description = reqData.Description
	course.CategoryID = reqData.CategoryID
	course.Price = reqData.Price
	if reqData.Level != "" {
		course.Level = reqData.Level
	}
	course.Duration = reqData.Duration
	course.Prerequisites = reqData.Prerequisites
	course.LearningObjectives = jsonColumn(reqData.LearningObjectives)
	course.Tags = jsonColumn(reqData.Tags)
	course.IsPublished = reqData.IsPublished

	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse soft-deletes a course; owned lessons cascade on the hard delete path
func DeleteCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course instructor can delete this course!", nil)
	}

	course.IsDeleted = true
	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// GetFeaturedCourses is a public listing ordered by priority
func GetFeaturedCourses(c *fiber.Ctx) error {
	var featured []courseModels.FeaturedCourse
	if err := database.Database.Db.
		Preload("Course", "is_deleted = ?", false).
		Order("priority asc, created_at desc").
		Find(&featured).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch featured courses!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Featured courses fetched successfully!", featured)
}

// GetTestimonials is a public read-only listing
func GetTestimonials(c *fiber.Ctx) error {
	var testimonials []courseModels.Testimonial
	if err := database.Database.Db.Order("created_at desc").Find(&testimonials).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch testimonials!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Testimonials fetched successfully!", testimonials)
}

// courseRating recomputes the average rating from reviews on every read
func courseRating(courseID uint) (float64, int64) {
	db := database.Database.Db

	var count int64
	db.Model(&courseModels.Review{}).Where("course_id = ?", courseID).Count(&count)
	if count == 0 {
		return 0, 0
	}

	var avg float64
	db.Model(&courseModels.Review{}).Where("course_id = ?", courseID).
		Select("AVG(rating)").Scan(&avg)
	return avg, count
}
