package quizController

import (
	"testing"

	courseModels "edublog/models/course"
	quizValidators "edublog/validators/quiz"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func answerID(id uint) *uint { return &id }

func choiceQuestion(questionType string) *courseModels.Question {
	return &courseModels.Question{
		Model:        gorm.Model{ID: 1},
		QuestionType: questionType,
		Points:       1,
		Answers: []courseModels.Answer{
			{Model: gorm.Model{ID: 10}, Text: "Right", IsCorrect: true},
			{Model: gorm.Model{ID: 11}, Text: "Wrong", IsCorrect: false},
		},
	}
}

func TestGradeMultipleChoice(t *testing.T) {
	question := choiceQuestion(courseModels.QuestionMultipleChoice)

	assert.True(t, gradeResponse(question, quizValidators.ResponseInput{QuestionID: 1, AnswerID: answerID(10)}))
	assert.False(t, gradeResponse(question, quizValidators.ResponseInput{QuestionID: 1, AnswerID: answerID(11)}))
}

func TestGradeChoiceWithoutAnswerID(t *testing.T) {
	question := choiceQuestion(courseModels.QuestionTrueFalse)

	assert.False(t, gradeResponse(question, quizValidators.ResponseInput{QuestionID: 1}))
}

func TestGradeChoiceWithForeignAnswerID(t *testing.T) {
	question := choiceQuestion(courseModels.QuestionMultipleChoice)

	assert.False(t, gradeResponse(question, quizValidators.ResponseInput{QuestionID: 1, AnswerID: answerID(999)}))
}

func TestGradeShortAnswerNormalizesInput(t *testing.T) {
	question := &courseModels.Question{
		Model:        gorm.Model{ID: 2},
		QuestionType: courseModels.QuestionShortAnswer,
		Points:       1,
		Answers: []courseModels.Answer{
			{Model: gorm.Model{ID: 20}, Text: "paris", IsCorrect: true},
		},
	}

	assert.True(t, gradeResponse(question, quizValidators.ResponseInput{QuestionID: 2, TextResponse: "  PARIS "}))
	assert.True(t, gradeResponse(question, quizValidators.ResponseInput{QuestionID: 2, TextResponse: "Paris"}))
	assert.False(t, gradeResponse(question, quizValidators.ResponseInput{QuestionID: 2, TextResponse: "London"}))
	assert.False(t, gradeResponse(question, quizValidators.ResponseInput{QuestionID: 2, TextResponse: ""}))
}

func TestGradeShortAnswerWithoutDesignatedAnswer(t *testing.T) {
	question := &courseModels.Question{
		Model:        gorm.Model{ID: 3},
		QuestionType: courseModels.QuestionShortAnswer,
		Points:       1,
		Answers: []courseModels.Answer{
			{Model: gorm.Model{ID: 30}, Text: "paris", IsCorrect: false},
		},
	}

	// No designated correct answer grades as incorrect, not as an error
	assert.False(t, gradeResponse(question, quizValidators.ResponseInput{QuestionID: 3, TextResponse: "paris"}))
}

func TestNormalizeShortAnswer(t *testing.T) {
	assert.Equal(t, "paris", normalizeShortAnswer("  PARIS "))
	assert.Equal(t, "", normalizeShortAnswer("   "))
}
