package quizController

import (
	"log"

	"edublog/database"
	"edublog/middleware"
	courseModels "edublog/models/course"
	quizValidators "edublog/validators/quiz"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateQuiz attaches a quiz to a lesson in the instructor's course
func CreateQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	lessonID := c.Locals("lessonID").(uint)
	reqData := c.Locals("validatedQuiz").(*quizValidators.QuizRequest)
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if course.InstructorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course instructor can add quizzes!", nil)
	}

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	quiz := courseModels.Quiz{
		LessonID:     lesson.ID,
		Title:        reqData.Title,
		Description:  reqData.Description,
		PassingScore: reqData.PassingScore,
		TimeLimit:    reqData.TimeLimit,
	}

	if err := db.Create(&quiz).Error; err != nil {
		log.Printf("Error creating quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}

// AddQuestion appends a question with its answers to a quiz
func AddQuestion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(uint)
	reqData := c.Locals("validatedQuestion").(*quizValidators.QuestionRequest)
	db := database.Database.Db

	quiz, course, err := resolveQuizCourse(quizID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}
	if course.InstructorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course instructor can add questions!", nil)
	}

	question := courseModels.Question{
		QuizID:       quiz.ID,
		Text:         reqData.Text,
		Explanation:  reqData.Explanation,
		Points:       reqData.Points,
		Order:        reqData.Order,
		QuestionType: reqData.QuestionType,
	}
	for _, a := range reqData.Answers {
		question.Answers = append(question.Answers, courseModels.Answer{
			Text:        a.Text,
			IsCorrect:   a.IsCorrect,
			Explanation: a.Explanation,
		})
	}

	if err := db.Create(&question).Error; err != nil {
		log.Printf("Error creating question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question added successfully!", question)
}

// GetQuiz returns a quiz with its questions. Answer correctness flags and
// explanations are stripped unless the caller is the course instructor.
func GetQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(uint)
	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.Where("id = ? AND is_deleted = ?", quizID, false).
		Preload("Questions", func(tx *gorm.DB) *gorm.DB { return tx.Order("question_order asc") }).
		Preload("Questions.Answers").
		First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	_, course, err := resolveQuizCourse(quizID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	if course.InstructorID != userID {
		// Student view: never leak the answer key
		for i := range quiz.Questions {
			quiz.Questions[i].Explanation = ""
			for j := range quiz.Questions[i].Answers {
				quiz.Questions[i].Answers[j].IsCorrect = false
				quiz.Questions[i].Answers[j].Explanation = ""
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", quiz)
}

// GetLessonQuizzes lists the quizzes hosted by a lesson
func GetLessonQuizzes(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	lessonID := c.Locals("lessonID").(uint)
	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var quizzes []courseModels.Quiz
	if err := db.Where("lesson_id = ? AND is_deleted = ?", lessonID, false).Find(&quizzes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quizzes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quizzes fetched successfully!", quizzes)
}

// resolveQuizCourse walks quiz -> lesson -> course
func resolveQuizCourse(quizID uint) (*courseModels.Quiz, *courseModels.Course, error) {
	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return nil, nil, err
	}
	var lesson courseModels.Lesson
	if err := db.Where("id = ?", quiz.LessonID).First(&lesson).Error; err != nil {
		return nil, nil, err
	}
	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", lesson.CourseID, false).First(&course).Error; err != nil {
		return nil, nil, err
	}
	return &quiz, &course, nil
}
