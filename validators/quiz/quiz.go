package quizValidator

import (
	"strconv"
	"strings"

	"edublog/middleware"
	courseModels "edublog/models/course"

	"github.com/gofiber/fiber/v2"
)

func idParam(param, localKey, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params(param))
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+"!", nil)
		}
		c.Locals(localKey, uint(id))
		return c.Next()
	}
}

func QuizID() fiber.Handler { return idParam("quiz_id", "quizID", "Quiz ID") }

func QuizAttemptIDs() fiber.Handler {
	return func(c *fiber.Ctx) error {
		quizID, err := strconv.Atoi(strings.TrimSpace(c.Params("quiz_id")))
		if err != nil || quizID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Quiz ID!", nil)
		}
		attemptID, err := strconv.Atoi(strings.TrimSpace(c.Params("attempt_id")))
		if err != nil || attemptID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Attempt ID!", nil)
		}

		c.Locals("quizID", uint(quizID))
		c.Locals("attemptID", uint(attemptID))
		return c.Next()
	}
}

// QuizRequest is the validated quiz create/update payload
type QuizRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	PassingScore uint   `json:"passing_score"`
	TimeLimit    *uint  `json:"time_limit"`
}

func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(QuizRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.PassingScore > 100 {
			errors["passing_score"] = "Passing score must be between 0 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

// AnswerInput is one answer option in a question payload
type AnswerInput struct {
	Text        string `json:"text"`
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation"`
}

// QuestionRequest is the validated question create payload
type QuestionRequest struct {
	Text         string        `json:"text"`
	Explanation  string        `json:"explanation"`
	Points       uint          `json:"points"`
	Order        uint          `json:"order"`
	QuestionType string        `json:"question_type"`
	Answers      []AnswerInput `json:"answers"`
}

func CreateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(QuestionRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Text) == "" {
			errors["text"] = "Question text is required!"
		}
		if reqData.Points == 0 {
			errors["points"] = "Points must be greater than 0!"
		}

		switch reqData.QuestionType {
		case courseModels.QuestionMultipleChoice, courseModels.QuestionTrueFalse, courseModels.QuestionShortAnswer:
		default:
			errors["question_type"] = "Question type must be multiple_choice, true_false or short_answer!"
		}

		correctCount := 0
		for _, a := range reqData.Answers {
			if a.IsCorrect {
				correctCount++
			}
		}
		if len(reqData.Answers) == 0 {
			errors["answers"] = "At least one answer is required!"
		} else if reqData.QuestionType == courseModels.QuestionShortAnswer && correctCount != 1 {
			errors["answers"] = "Short answer questions need exactly one correct answer!"
		} else if correctCount == 0 {
			errors["answers"] = "At least one answer must be marked correct!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

// ResponseInput is one submitted answer within an attempt submission
type ResponseInput struct {
	QuestionID   uint   `json:"question_id"`
	AnswerID     *uint  `json:"answer_id"`
	TextResponse string `json:"text_response"`
}

// SubmitRequest is the validated attempt submission payload
type SubmitRequest struct {
	Responses []ResponseInput `json:"responses"`
}

func SubmitAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Responses) == 0 {
			errors["responses"] = "At least one response is required!"
		}
		for i, r := range reqData.Responses {
			if r.QuestionID == 0 {
				errors["responses"] = "Response " + strconv.Itoa(i+1) + " is missing question_id!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmit", reqData)
		return c.Next()
	}
}
