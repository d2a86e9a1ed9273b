package course_test

import (
	"fmt"
	"testing"

	"edublog/database"
	courseModels "edublog/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDb(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	return db
}

func seedEnrollment(t *testing.T, db *gorm.DB, lessonCount int) (*courseModels.Enrollment, []courseModels.Lesson) {
	course := courseModels.Course{
		Title:        "Go from scratch",
		Slug:         "go-from-scratch",
		InstructorID: 1,
		IsPublished:  true,
	}
	require.NoError(t, db.Create(&course).Error)

	lessons := make([]courseModels.Lesson, lessonCount)
	for i := range lessons {
		lessons[i] = courseModels.Lesson{
			CourseID: course.ID,
			Title:    fmt.Sprintf("Lesson %d", i+1),
			Order:    uint(i + 1),
		}
		require.NoError(t, db.Create(&lessons[i]).Error)
	}

	enrollment := courseModels.Enrollment{UserID: 2, CourseID: course.ID}
	require.NoError(t, db.Create(&enrollment).Error)

	return &enrollment, lessons
}

func TestCompleteLessonProgressCreatesRow(t *testing.T) {
	db := openTestDb(t)
	enrollment, lessons := seedEnrollment(t, db, 2)

	progress, flipped, err := courseModels.CompleteLessonProgress(db, enrollment, lessons[0].ID)
	require.NoError(t, err)

	assert.True(t, progress.IsCompleted)
	assert.NotNil(t, progress.CompletedAt)
	assert.False(t, flipped)
	assert.False(t, enrollment.IsCompleted)
}

func TestCompleteLessonProgressIsIdempotent(t *testing.T) {
	db := openTestDb(t)
	enrollment, lessons := seedEnrollment(t, db, 2)

	_, _, err := courseModels.CompleteLessonProgress(db, enrollment, lessons[0].ID)
	require.NoError(t, err)
	_, flipped, err := courseModels.CompleteLessonProgress(db, enrollment, lessons[0].ID)
	require.NoError(t, err)
	assert.False(t, flipped)

	var rows int64
	require.NoError(t, db.Model(&courseModels.LessonProgress{}).
		Where("enrollment_id = ? AND lesson_id = ?", enrollment.ID, lessons[0].ID).
		Count(&rows).Error)
	assert.EqualValues(t, 1, rows)

	completed, total, err := courseModels.CountLessonProgress(db, enrollment)
	require.NoError(t, err)
	assert.EqualValues(t, 1, completed)
	assert.EqualValues(t, 2, total)
}

func TestEnrollmentCompletesWithLastLesson(t *testing.T) {
	db := openTestDb(t)
	enrollment, lessons := seedEnrollment(t, db, 2)

	_, flipped, err := courseModels.CompleteLessonProgress(db, enrollment, lessons[0].ID)
	require.NoError(t, err)
	assert.False(t, flipped)

	_, flipped, err = courseModels.CompleteLessonProgress(db, enrollment, lessons[1].ID)
	require.NoError(t, err)
	assert.True(t, flipped)
	assert.True(t, enrollment.IsCompleted)
	assert.NotNil(t, enrollment.CompletedAt)
}

func TestEnrollmentCompletionIsMonotone(t *testing.T) {
	db := openTestDb(t)
	enrollment, lessons := seedEnrollment(t, db, 1)

	_, flipped, err := courseModels.CompleteLessonProgress(db, enrollment, lessons[0].ID)
	require.NoError(t, err)
	assert.True(t, flipped)

	// Completing the last lesson again must not flip the enrollment twice
	_, flipped, err = courseModels.CompleteLessonProgress(db, enrollment, lessons[0].ID)
	require.NoError(t, err)
	assert.False(t, flipped)

	var stored courseModels.Enrollment
	require.NoError(t, db.First(&stored, enrollment.ID).Error)
	assert.True(t, stored.IsCompleted)
}

func TestDeletedLessonsDoNotCountTowardTotal(t *testing.T) {
	db := openTestDb(t)
	enrollment, lessons := seedEnrollment(t, db, 2)

	require.NoError(t, db.Model(&lessons[1]).Update("is_deleted", true).Error)

	_, flipped, err := courseModels.CompleteLessonProgress(db, enrollment, lessons[0].ID)
	require.NoError(t, err)
	assert.True(t, flipped)
}

func TestProgressPercent(t *testing.T) {
	assert.Equal(t, 0.0, courseModels.ProgressPercent(0, 0))
	assert.Equal(t, 50.0, courseModels.ProgressPercent(1, 2))
	assert.Equal(t, 100.0, courseModels.ProgressPercent(3, 3))
}
