package quizController_test

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
	quizRoutes "edublog/routers/quizRoutes"

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

type attemptPayload struct {
	ID     uint     `json:"ID"`
	Score  *float64 `json:"score"`
	Passed bool     `json:"passed"`
	Responses []struct {
		QuestionID uint `json:"question_id"`
		IsCorrect  bool `json:"is_correct"`
	} `json:"responses"`
}

type quizFixture struct {
	app        *fiber.App
	db         *gorm.DB
	instructor models.User
	student    models.User
	course     courseModels.Course
	lesson     courseModels.Lesson
	enrollment courseModels.Enrollment
	quiz       courseModels.Quiz
}

func setupQuizApp(t *testing.T) *quizFixture {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	quizRoutes.SetupQuizRoutes(app)

	f := &quizFixture{app: app, db: db}

	f.instructor = models.User{Name: "Ada", Email: "ada@example.com", Role: "INSTRUCTOR"}
	require.NoError(t, db.Create(&f.instructor).Error)
	f.student = models.User{Name: "Sam", Email: "sam@example.com", Role: "USER"}
	require.NoError(t, db.Create(&f.student).Error)

	f.course = courseModels.Course{
		Title:        "Geography 101",
		Slug:         "geography-101",
		InstructorID: f.instructor.ID,
		IsPublished:  true,
	}
	require.NoError(t, db.Create(&f.course).Error)

	f.lesson = courseModels.Lesson{CourseID: f.course.ID, Title: "Capitals", Order: 1}
	require.NoError(t, db.Create(&f.lesson).Error)

	f.enrollment = courseModels.Enrollment{UserID: f.student.ID, CourseID: f.course.ID}
	require.NoError(t, db.Create(&f.enrollment).Error)
	require.NoError(t, db.Create(&courseModels.LessonProgress{
		EnrollmentID: f.enrollment.ID,
		LessonID:     f.lesson.ID,
	}).Error)

	f.quiz = courseModels.Quiz{LessonID: f.lesson.ID, Title: "Capitals quiz", PassingScore: 70}
	require.NoError(t, db.Create(&f.quiz).Error)

	return f
}

func (f *quizFixture) addChoiceQuestion(t *testing.T, text string) courseModels.Question {
	question := courseModels.Question{
		QuizID:       f.quiz.ID,
		Text:         text,
		Points:       1,
		QuestionType: courseModels.QuestionMultipleChoice,
		Answers: []courseModels.Answer{
			{Text: "Right", IsCorrect: true},
			{Text: "Wrong", IsCorrect: false},
		},
	}
	require.NoError(t, f.db.Create(&question).Error)
	return question
}

func (f *quizFixture) addShortAnswerQuestion(t *testing.T, text, answer string) courseModels.Question {
	question := courseModels.Question{
		QuizID:       f.quiz.ID,
		Text:         text,
		Points:       1,
		QuestionType: courseModels.QuestionShortAnswer,
		Answers:      []courseModels.Answer{{Text: answer, IsCorrect: true}},
	}
	require.NoError(t, f.db.Create(&question).Error)
	return question
}

func (f *quizFixture) token(t *testing.T, user models.User) string {
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return token
}

func (f *quizFixture) request(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
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

func (f *quizFixture) startAttempt(t *testing.T) attemptPayload {
	status, env := f.request(t, http.MethodPost, fmt.Sprintf("/quiz/%d/attempt", f.quiz.ID), f.token(t, f.student), nil)
	require.Equal(t, http.StatusCreated, status)

	var attempt attemptPayload
	require.NoError(t, json.Unmarshal(env.Data, &attempt))
	return attempt
}

func (f *quizFixture) submit(t *testing.T, attemptID uint, responses []map[string]interface{}) (int, attemptPayload) {
	path := fmt.Sprintf("/quiz/%d/attempt/%d/submit", f.quiz.ID, attemptID)
	status, env := f.request(t, http.MethodPost, path, f.token(t, f.student), fiber.Map{"responses": responses})

	var attempt attemptPayload
	if status == http.StatusOK {
		require.NoError(t, json.Unmarshal(env.Data, &attempt))
	}
	return status, attempt
}

func choiceResponse(question courseModels.Question, correct bool) map[string]interface{} {
	for _, a := range question.Answers {
		if a.IsCorrect == correct {
			return map[string]interface{}{"question_id": question.ID, "answer_id": a.ID}
		}
	}
	return nil
}

func TestStartAttemptRequiresEnrollment(t *testing.T) {
	f := setupQuizApp(t)

	outsider := models.User{Name: "Eve", Email: "eve@example.com", Role: "USER"}
	require.NoError(t, f.db.Create(&outsider).Error)

	status, _ := f.request(t, http.MethodPost, fmt.Sprintf("/quiz/%d/attempt", f.quiz.ID), f.token(t, outsider), nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = f.request(t, http.MethodPost, fmt.Sprintf("/quiz/%d/attempt", f.quiz.ID), f.token(t, f.student), nil)
	assert.Equal(t, http.StatusCreated, status)
}

func TestSubmitScoresAllAnsweredQuestions(t *testing.T) {
	f := setupQuizApp(t)
	q1 := f.addChoiceQuestion(t, "Capital of France?")
	q2 := f.addChoiceQuestion(t, "Capital of Spain?")

	attempt := f.startAttempt(t)
	status, graded := f.submit(t, attempt.ID, []map[string]interface{}{
		choiceResponse(q1, true),
		choiceResponse(q2, false),
	})

	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, graded.Score)
	assert.Equal(t, 50.0, *graded.Score)
	assert.False(t, graded.Passed)
	assert.Len(t, graded.Responses, 2)
}

func TestSubmitCountsOnlyAnsweredQuestions(t *testing.T) {
	f := setupQuizApp(t)
	q1 := f.addChoiceQuestion(t, "Capital of France?")
	f.addChoiceQuestion(t, "Capital of Spain?")

	attempt := f.startAttempt(t)
	status, graded := f.submit(t, attempt.ID, []map[string]interface{}{
		choiceResponse(q1, true),
	})

	// The omitted question stays out of the denominator
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, graded.Score)
	assert.Equal(t, 100.0, *graded.Score)
	assert.True(t, graded.Passed)
	assert.Len(t, graded.Responses, 1)
}

func TestSubmitNormalizesShortAnswers(t *testing.T) {
	f := setupQuizApp(t)
	q := f.addShortAnswerQuestion(t, "Capital of France?", "paris")

	attempt := f.startAttempt(t)
	status, graded := f.submit(t, attempt.ID, []map[string]interface{}{
		{"question_id": q.ID, "text_response": "  PARIS "},
	})

	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, graded.Score)
	assert.Equal(t, 100.0, *graded.Score)
	require.Len(t, graded.Responses, 1)
	assert.True(t, graded.Responses[0].IsCorrect)
}

func TestResubmissionConflictsAndKeepsResult(t *testing.T) {
	f := setupQuizApp(t)
	q := f.addChoiceQuestion(t, "Capital of France?")

	attempt := f.startAttempt(t)
	status, graded := f.submit(t, attempt.ID, []map[string]interface{}{choiceResponse(q, true)})
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, graded.Score)
	assert.Equal(t, 100.0, *graded.Score)

	status, _ = f.submit(t, attempt.ID, []map[string]interface{}{choiceResponse(q, false)})
	assert.Equal(t, http.StatusConflict, status)

	// The stored result and its response rows are untouched
	var stored courseModels.QuizAttempt
	require.NoError(t, f.db.First(&stored, attempt.ID).Error)
	require.NotNil(t, stored.Score)
	assert.Equal(t, 100.0, *stored.Score)
	assert.True(t, stored.Passed)

	var rows int64
	require.NoError(t, f.db.Model(&courseModels.QuizResponse{}).
		Where("attempt_id = ?", attempt.ID).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestPassingSubmitCompletesLessonAndCourse(t *testing.T) {
	f := setupQuizApp(t)
	q := f.addChoiceQuestion(t, "Capital of France?")

	attempt := f.startAttempt(t)
	status, graded := f.submit(t, attempt.ID, []map[string]interface{}{choiceResponse(q, true)})
	require.Equal(t, http.StatusOK, status)
	assert.True(t, graded.Passed)

	var progress courseModels.LessonProgress
	require.NoError(t, f.db.Where("enrollment_id = ? AND lesson_id = ?", f.enrollment.ID, f.lesson.ID).
		First(&progress).Error)
	assert.True(t, progress.IsCompleted)

	var enrollment courseModels.Enrollment
	require.NoError(t, f.db.First(&enrollment, f.enrollment.ID).Error)
	assert.True(t, enrollment.IsCompleted)
	assert.NotNil(t, enrollment.CompletedAt)
}

func TestFailingSubmitLeavesProgressAlone(t *testing.T) {
	f := setupQuizApp(t)
	q := f.addChoiceQuestion(t, "Capital of France?")

	attempt := f.startAttempt(t)
	status, graded := f.submit(t, attempt.ID, []map[string]interface{}{choiceResponse(q, false)})
	require.Equal(t, http.StatusOK, status)
	assert.False(t, graded.Passed)

	var progress courseModels.LessonProgress
	require.NoError(t, f.db.Where("enrollment_id = ? AND lesson_id = ?", f.enrollment.ID, f.lesson.ID).
		First(&progress).Error)
	assert.False(t, progress.IsCompleted)

	var enrollment courseModels.Enrollment
	require.NoError(t, f.db.First(&enrollment, f.enrollment.ID).Error)
	assert.False(t, enrollment.IsCompleted)
}

func TestSubmitRejectsForeignQuestion(t *testing.T) {
	f := setupQuizApp(t)
	f.addChoiceQuestion(t, "Capital of France?")

	attempt := f.startAttempt(t)
	status, _ := f.submit(t, attempt.ID, []map[string]interface{}{
		{"question_id": 99999, "text_response": "paris"},
	})
	assert.Equal(t, http.StatusNotFound, status)

	// The attempt is still open and untouched
	var stored courseModels.QuizAttempt
	require.NoError(t, f.db.First(&stored, attempt.ID).Error)
	assert.Nil(t, stored.CompletedAt)
}

func TestSubmitRejectsUnresolvableAnswer(t *testing.T) {
	f := setupQuizApp(t)
	q := f.addChoiceQuestion(t, "Capital of France?")

	attempt := f.startAttempt(t)

	status, _ := f.submit(t, attempt.ID, []map[string]interface{}{
		{"question_id": q.ID, "answer_id": 99999},
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = f.submit(t, attempt.ID, []map[string]interface{}{
		{"question_id": q.ID},
	})
	assert.Equal(t, http.StatusNotFound, status)

	var stored courseModels.QuizAttempt
	require.NoError(t, f.db.First(&stored, attempt.ID).Error)
	assert.Nil(t, stored.CompletedAt)

	var rows int64
	require.NoError(t, f.db.Model(&courseModels.QuizResponse{}).
		Where("attempt_id = ?", attempt.ID).Count(&rows).Error)
	assert.EqualValues(t, 0, rows)

	// The attempt can still be submitted with a resolvable answer afterwards
	status, graded := f.submit(t, attempt.ID, []map[string]interface{}{choiceResponse(q, true)})
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, graded.Score)
	assert.Equal(t, 100.0, *graded.Score)
}

func TestSubmitSomeoneElsesAttemptIsNotFound(t *testing.T) {
	f := setupQuizApp(t)
	q := f.addChoiceQuestion(t, "Capital of France?")
	attempt := f.startAttempt(t)

	other := models.User{Name: "Eve", Email: "eve@example.com", Role: "USER"}
	require.NoError(t, f.db.Create(&other).Error)

	path := fmt.Sprintf("/quiz/%d/attempt/%d/submit", f.quiz.ID, attempt.ID)
	status, _ := f.request(t, http.MethodPost, path, f.token(t, other),
		fiber.Map{"responses": []map[string]interface{}{choiceResponse(q, true)}})
	assert.Equal(t, http.StatusNotFound, status)
}
