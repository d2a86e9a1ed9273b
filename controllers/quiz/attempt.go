package quizController

import (
	"log"
	"strings"
	"time"

	"edublog/database"
	"edublog/middleware"
	"edublog/models"
	courseModels "edublog/models/course"
	"edublog/utils"
	quizValidators "edublog/validators/quiz"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StartAttempt opens a new attempt on a quiz for an enrolled user. Attempts
// are never deduplicated; starting again simply creates another one.
func StartAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(uint)
	db := database.Database.Db

	_, course, err := resolveQuizCourse(quizID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, course.ID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled in the course to take this quiz!", nil)
	}

	attempt := courseModels.QuizAttempt{
		QuizID:    quizID,
		UserID:    userID,
		StartedAt: time.Now(),
	}

	if err := db.Create(&attempt).Error; err != nil {
		log.Printf("Error creating quiz attempt: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start attempt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Attempt started successfully!", attempt)
}

// SubmitAttempt grades a pending attempt and finalizes it. Grading, response
// rows, the score write and the lesson progress cascade all commit in one
// transaction; a second submission of the same attempt gets a conflict and
// leaves the stored result untouched.
func SubmitAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(uint)
	attemptID := c.Locals("attemptID").(uint)
	reqData := c.Locals("validatedSubmit").(*quizValidators.SubmitRequest)
	db := database.Database.Db

	quiz, course, err := resolveQuizCourse(quizID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	// Ownership is part of the lookup: someone else's attempt is not found,
	// not forbidden.
	var attempt courseModels.QuizAttempt
	if err := db.Where("id = ? AND quiz_id = ? AND user_id = ?", attemptID, quizID, userID).First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
	}
	if attempt.CompletedAt != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "This attempt has already been submitted!", nil)
	}

	var questions []courseModels.Question
	if err := db.Where("quiz_id = ?", quizID).Preload("Answers").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load quiz questions!", nil)
	}
	questionByID := make(map[uint]*courseModels.Question, len(questions))
	for i := range questions {
		questionByID[questions[i].ID] = &questions[i]
	}

	// Every referenced question and, for choice questions, every referenced
	// answer must resolve before anything is written.
	for _, r := range reqData.Responses {
		question, found := questionByID[r.QuestionID]
		if !found {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found in this quiz!", nil)
		}
		switch question.QuestionType {
		case courseModels.QuestionMultipleChoice, courseModels.QuestionTrueFalse:
			if r.AnswerID == nil || !questionHasAnswer(question, *r.AnswerID) {
				return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Answer not found for this question!", nil)
			}
		}
	}

	var (
		alreadySubmitted bool
		flippedCompleted bool
	)

	err = db.Transaction(func(tx *gorm.DB) error {
		// Re-check under the transaction; only one submission may claim the
		// attempt. The pre-check above just gives a fast path.
		now := time.Now()
		claim := tx.Model(&courseModels.QuizAttempt{}).
			Where("id = ? AND completed_at IS NULL", attempt.ID).
			Update("completed_at", now)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			alreadySubmitted = true
			return nil
		}

		var earned, possible float64
		seen := make(map[uint]bool, len(reqData.Responses))
		for _, input := range reqData.Responses {
			if seen[input.QuestionID] {
				continue
			}
			seen[input.QuestionID] = true

			question := questionByID[input.QuestionID]
			isCorrect := gradeResponse(question, input)

			response := courseModels.QuizResponse{
				AttemptID:    attempt.ID,
				QuestionID:   question.ID,
				AnswerID:     input.AnswerID,
				TextResponse: input.TextResponse,
				IsCorrect:    isCorrect,
			}
			// Only answered questions count toward the denominator.
			possible += float64(question.Points)
			if isCorrect {
				response.PointsEarned = float64(question.Points)
				earned += response.PointsEarned
			}
			if err := tx.Create(&response).Error; err != nil {
				return err
			}
		}

		score := 0.0
		if possible > 0 {
			score = earned / possible * 100
		}
		passed := score >= float64(quiz.PassingScore)

		attempt.CompletedAt = &now
		attempt.Score = &score
		attempt.Passed = passed
		if err := tx.Model(&courseModels.QuizAttempt{}).Where("id = ?", attempt.ID).
			Updates(map[string]interface{}{"score": score, "passed": passed}).Error; err != nil {
			return err
		}

		if !passed {
			return nil
		}

		// Passing the quiz completes its lesson. A vanished enrollment is not
		// an error; the result stands and the cascade is skipped.
		var enrollment courseModels.Enrollment
		if err := tx.Where("user_id = ? AND course_id = ?", userID, course.ID).First(&enrollment).Error; err != nil {
			log.Printf("No enrollment for user %d on course %d, skipping progress cascade", userID, course.ID)
			return nil
		}

		_, flipped, err := courseModels.CompleteLessonProgress(tx, &enrollment, quiz.LessonID)
		if err != nil {
			return err
		}
		flippedCompleted = flipped
		return nil
	})
	if err != nil {
		log.Printf("Error submitting attempt %d: %v", attempt.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit attempt!", nil)
	}
	if alreadySubmitted {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "This attempt has already been submitted!", nil)
	}

	go notifyAttemptSubmitted(userID, course, &attempt, flippedCompleted)

	if err := db.Preload("Responses").First(&attempt, attempt.ID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load attempt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt submitted successfully!", attempt)
}

// GetAttempts lists the caller's attempts on a quiz, newest first
func GetAttempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(uint)
	db := database.Database.Db

	var attempts []courseModels.QuizAttempt
	if err := db.Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order("created_at desc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", attempts)
}

// GetAttemptDetails returns one of the caller's attempts with its responses
func GetAttemptDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(uint)
	attemptID := c.Locals("attemptID").(uint)
	db := database.Database.Db

	var attempt courseModels.QuizAttempt
	if err := db.Where("id = ? AND quiz_id = ? AND user_id = ?", attemptID, quizID, userID).
		Preload("Responses").First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt fetched successfully!", attempt)
}

func questionHasAnswer(question *courseModels.Question, answerID uint) bool {
	for _, a := range question.Answers {
		if a.ID == answerID {
			return true
		}
	}
	return false
}

// gradeResponse decides correctness for a single response. Choice questions
// are graded by the stored correctness flag of the chosen answer; submission
// rejects unresolvable answer ids up front, so the nil/unknown branches here
// only ever grade as incorrect. Short answers compare case-insensitively with
// the designated correct answer after trimming; a short answer question
// without a designated correct answer grades as incorrect rather than
// erroring.
func gradeResponse(question *courseModels.Question, input quizValidators.ResponseInput) bool {
	switch question.QuestionType {
	case courseModels.QuestionMultipleChoice, courseModels.QuestionTrueFalse:
		if input.AnswerID == nil {
			return false
		}
		for _, a := range question.Answers {
			if a.ID == *input.AnswerID {
				return a.IsCorrect
			}
		}
		return false
	case courseModels.QuestionShortAnswer:
		for _, a := range question.Answers {
			if a.IsCorrect {
				return normalizeShortAnswer(input.TextResponse) == normalizeShortAnswer(a.Text)
			}
		}
		return false
	}
	return false
}

func normalizeShortAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// notifyAttemptSubmitted fires the webhook for the graded attempt and, when
// the submission completed the whole course, the completion email.
func notifyAttemptSubmitted(userID uint, course *courseModels.Course, attempt *courseModels.QuizAttempt, courseCompleted bool) {
	score := 0.0
	if attempt.Score != nil {
		score = *attempt.Score
	}
	utils.NotifyWebhook("quiz.submitted", userID, map[string]interface{}{
		"quiz_id":    attempt.QuizID,
		"attempt_id": attempt.ID,
		"score":      score,
		"passed":     attempt.Passed,
	})

	if !courseCompleted {
		return
	}

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		log.Printf("Error loading user %d for completion email: %v", userID, err)
		return
	}
	if err := utils.SendCourseCompletionEmail(user.Name, user.Email, course.Title); err != nil {
		log.Printf("Error sending completion email: %v", err)
	}
	utils.NotifyWebhook("course.completed", userID, map[string]interface{}{
		"course_id": course.ID,
	})
}
