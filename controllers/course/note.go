package courseController

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"
	"strings"
	"time"

	"edublog/database"
	"edublog/middleware"
	"edublog/models"
	courseModels "edublog/models/course"
	courseValidators "edublog/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateNote adds a note on a lesson; enrolled users only
func CreateNote(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	lessonID := c.Locals("lessonID").(uint)
	reqData := c.Locals("validatedNote").(*courseValidators.NoteRequest)
	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled in the course to add notes!", nil)
	}

	note := courseModels.Note{
		LessonID: lesson.ID,
		UserID:   userID,
		Content:  reqData.Content,
		Tags:     reqData.Tags,
		IsShared: reqData.IsShared,
	}

	if err := db.Create(&note).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create note!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Note created successfully!", note)
}

// noteQuery scopes notes on a lesson to what the caller may see: their own
// notes plus notes shared with them. Optional tag/date/shared filters come
// from the query string.
func noteQuery(c *fiber.Ctx, userID, lessonID uint) *gorm.DB {
	db := database.Database.Db

	query := db.Model(&courseModels.Note{}).
		Joins("LEFT JOIN note_shares ON note_shares.note_id = notes.id AND note_shares.user_id = ?", userID).
		Where("notes.lesson_id = ?", lessonID).
		Where("notes.user_id = ? OR note_shares.user_id IS NOT NULL", userID).
		Distinct("notes.*")

	if tags := c.Query("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				query = query.Where("notes.tags LIKE ?", "%"+tag+"%")
			}
		}
	}
	if start := c.Query("start_date"); start != "" {
		if t, err := time.Parse("2006-01-02", start); err == nil {
			query = query.Where("notes.created_at >= ?", t)
		}
	}
	if end := c.Query("end_date"); end != "" {
		if t, err := time.Parse("2006-01-02", end); err == nil {
			query = query.Where("notes.created_at <= ?", t.Add(24*time.Hour))
		}
	}
	if shared := c.Query("shared"); shared != "" {
		query = query.Where("notes.is_shared = ?", strings.EqualFold(shared, "true"))
	}

	return query
}

// GetNotes lists the caller's visible notes on a lesson
func GetNotes(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(uint)

	var notes []courseModels.Note
	if err := noteQuery(c, userID, lessonID).Order("notes.created_at desc").Find(&notes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notes fetched successfully!", notes)
}

// ShareNoteWithUsers marks a note shared and grants the listed users access
func ShareNoteWithUsers(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	noteID, err := strconv.Atoi(c.Params("note_id"))
	if err != nil || noteID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Note ID!", nil)
	}

	reqData := c.Locals("validatedShareNote").(*courseValidators.ShareNoteRequest)
	db := database.Database.Db

	var note courseModels.Note
	if err := db.Where("id = ?", noteID).First(&note).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Note not found!", nil)
	}

	if note.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only share your own notes!", nil)
	}

	var users []models.User
	if err := db.Where("id IN ? AND is_deleted = ?", reqData.UserIDs, false).Find(&users).Error; err != nil || len(users) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No valid users to share with!", nil)
	}

	note.IsShared = true
	if err := db.Save(&note).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to share note!", nil)
	}
	if err := db.Model(&note).Association("SharedWith").Replace(users); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to share note!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Note shared successfully!", nil)
}

// GetSharedNotes lists notes on a lesson that others shared with the caller
func GetSharedNotes(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(uint)
	db := database.Database.Db

	var notes []courseModels.Note
	if err := db.Model(&courseModels.Note{}).
		Joins("JOIN note_shares ON note_shares.note_id = notes.id").
		Where("note_shares.user_id = ? AND notes.lesson_id = ?", userID, lessonID).
		Find(&notes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch shared notes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Shared notes fetched successfully!", notes)
}

// GetNoteTags returns the distinct tags across the caller's visible notes
func GetNoteTags(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(uint)

	var notes []courseModels.Note
	if err := noteQuery(c, userID, lessonID).Find(&notes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notes!", nil)
	}

	tagSet := make(map[string]bool)
	for i := range notes {
		for _, tag := range notes[i].TagList() {
			tagSet[tag] = true
		}
	}
	tags := make([]string, 0, len(tagSet))
	for tag := range tagSet {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tags fetched successfully!", tags)
}

// ExportNotes downloads the caller's visible notes as CSV or JSON
func ExportNotes(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(uint)

	var notes []courseModels.Note
	if err := noteQuery(c, userID, lessonID).Order("notes.created_at desc").Find(&notes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notes!", nil)
	}

	filename := "notes-" + time.Now().Format("20060102")

	if c.Query("format") == "csv" {
		var buf bytes.Buffer
		writer := csv.NewWriter(&buf)
		writer.Write([]string{"Lesson", "Content", "Tags", "Created At"})
		for i := range notes {
			writer.Write([]string{
				strconv.FormatUint(uint64(notes[i].LessonID), 10),
				notes[i].Content,
				notes[i].Tags,
				notes[i].CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		writer.Flush()

		c.Set("Content-Type", "text/csv")
		c.Set("Content-Disposition", `attachment; filename="`+filename+`.csv"`)
		return c.Send(buf.Bytes())
	}

	c.Set("Content-Disposition", `attachment; filename="`+filename+`.json"`)
	return c.JSON(notes)
}
