package courseController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"edublog/config"
	"edublog/database"
	"edublog/middleware"
	"edublog/models"
	courseModels "edublog/models/course"
	courseRoutes "edublog/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type courseFixture struct {
	app     *fiber.App
	db      *gorm.DB
	student models.User
	course  courseModels.Course
	lessons []courseModels.Lesson
}

func setupCourseApp(t *testing.T, lessonCount int) *courseFixture {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)

	f := &courseFixture{app: app, db: db}

	instructor := models.User{Name: "Ada", Email: "ada@example.com", Role: "INSTRUCTOR"}
	require.NoError(t, db.Create(&instructor).Error)
	f.student = models.User{Name: "Sam", Email: "sam@example.com", Role: "USER"}
	require.NoError(t, db.Create(&f.student).Error)

	f.course = courseModels.Course{
		Title:        "Geography 101",
		Slug:         "geography-101",
		InstructorID: instructor.ID,
		IsPublished:  true,
	}
	require.NoError(t, db.Create(&f.course).Error)

	f.lessons = make([]courseModels.Lesson, lessonCount)
	for i := range f.lessons {
		f.lessons[i] = courseModels.Lesson{
			CourseID: f.course.ID,
			Title:    fmt.Sprintf("Lesson %d", i+1),
			Order:    uint(i + 1),
		}
		require.NoError(t, db.Create(&f.lessons[i]).Error)
	}

	return f
}

func (f *courseFixture) token(t *testing.T, user models.User) string {
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return token
}

func (f *courseFixture) request(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func (f *courseFixture) enroll(t *testing.T) int {
	status, _ := f.request(t, http.MethodPost,
		fmt.Sprintf("/course/%d/enroll", f.course.ID), f.token(t, f.student), nil)
	return status
}

func TestEnrollCreatesProgressRowsEagerly(t *testing.T) {
	f := setupCourseApp(t, 3)

	require.Equal(t, http.StatusCreated, f.enroll(t))

	var enrollment courseModels.Enrollment
	require.NoError(t, f.db.Where("user_id = ? AND course_id = ?", f.student.ID, f.course.ID).
		First(&enrollment).Error)

	// One incomplete row per lesson, created with the enrollment
	var rows []courseModels.LessonProgress
	require.NoError(t, f.db.Where("enrollment_id = ?", enrollment.ID).Find(&rows).Error)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.False(t, row.IsCompleted)
		assert.Nil(t, row.CompletedAt)
	}
}

func TestDuplicateEnrollmentConflicts(t *testing.T) {
	f := setupCourseApp(t, 1)

	require.Equal(t, http.StatusCreated, f.enroll(t))
	assert.Equal(t, http.StatusConflict, f.enroll(t))

	var count int64
	require.NoError(t, f.db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ?", f.student.ID, f.course.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEnrollInUnpublishedCourseFails(t *testing.T) {
	f := setupCourseApp(t, 1)
	require.NoError(t, f.db.Model(&f.course).Update("is_published", false).Error)

	assert.Equal(t, http.StatusNotFound, f.enroll(t))
}

func TestCompletingEveryLessonCompletesCourse(t *testing.T) {
	f := setupCourseApp(t, 2)
	require.Equal(t, http.StatusCreated, f.enroll(t))

	complete := func(lessonID uint) envelope {
		status, env := f.request(t, http.MethodPost,
			fmt.Sprintf("/course/%d/lesson/%d/complete", f.course.ID, lessonID),
			f.token(t, f.student), nil)
		require.Equal(t, http.StatusOK, status)
		return env
	}

	var result struct {
		CourseCompleted bool `json:"course_completed"`
	}

	env := complete(f.lessons[0].ID)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.False(t, result.CourseCompleted)

	env = complete(f.lessons[1].ID)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.True(t, result.CourseCompleted)

	var enrollment courseModels.Enrollment
	require.NoError(t, f.db.Where("user_id = ? AND course_id = ?", f.student.ID, f.course.ID).
		First(&enrollment).Error)
	assert.True(t, enrollment.IsCompleted)
}

func TestReviewRequiresEnrollmentAndIsUnique(t *testing.T) {
	f := setupCourseApp(t, 1)
	path := fmt.Sprintf("/course/%d/review", f.course.ID)
	body := fiber.Map{"rating": 5, "comment": "great"}

	status, _ := f.request(t, http.MethodPost, path, f.token(t, f.student), body)
	assert.Equal(t, http.StatusForbidden, status)

	require.Equal(t, http.StatusCreated, f.enroll(t))

	status, _ = f.request(t, http.MethodPost, path, f.token(t, f.student), body)
	assert.Equal(t, http.StatusCreated, status)

	status, _ = f.request(t, http.MethodPost, path, f.token(t, f.student), body)
	assert.Equal(t, http.StatusConflict, status)
}

func TestCourseProgressIsDerived(t *testing.T) {
	f := setupCourseApp(t, 2)
	require.Equal(t, http.StatusCreated, f.enroll(t))

	status, env := f.request(t, http.MethodPost,
		fmt.Sprintf("/course/%d/lesson/%d/complete", f.course.ID, f.lessons[0].ID),
		f.token(t, f.student), nil)
	require.Equal(t, http.StatusOK, status)

	status, env = f.request(t, http.MethodGet,
		fmt.Sprintf("/course/%d/progress", f.course.ID), f.token(t, f.student), nil)
	require.Equal(t, http.StatusOK, status)

	var progress struct {
		CompletedLessons int64   `json:"completed_lessons"`
		TotalLessons     int64   `json:"total_lessons"`
		Progress         float64 `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &progress))
	assert.EqualValues(t, 1, progress.CompletedLessons)
	assert.EqualValues(t, 2, progress.TotalLessons)
	assert.Equal(t, 50.0, progress.Progress)
}
