package course

import "gorm.io/gorm"

// Question types. The set is closed; gradeResponse switches exhaustively over it.
const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionTrueFalse      = "true_false"
	QuestionShortAnswer    = "short_answer"
)

// Quiz belongs to one lesson
type Quiz struct {
	gorm.Model
	LessonID     uint       `json:"lesson_id" gorm:"index;not null"`
	Title        string     `json:"title" gorm:"not null"`
	Description  string     `json:"description" gorm:"type:text"`
	PassingScore uint       `json:"passing_score" gorm:"default:70"` // 0-100
	TimeLimit    *uint      `json:"time_limit"`                      // minutes; enforcement is the caller's policy
	Questions    []Question `json:"questions,omitempty" gorm:"constraint:OnDelete:CASCADE;"`
	IsDeleted    bool       `json:"-" gorm:"default:false"`
}

// Question is ordered within its quiz and carries a positive point value
type Question struct {
	gorm.Model
	QuizID       uint     `json:"quiz_id" gorm:"index;not null"`
	Text         string   `json:"text" gorm:"type:text;not null"`
	Explanation  string   `json:"explanation" gorm:"type:text"`
	Points       uint     `json:"points" gorm:"default:1"`
	Order        uint     `json:"order" gorm:"column:question_order;default:0"`
	QuestionType string   `json:"question_type" gorm:"not null"`
	Answers      []Answer `json:"answers,omitempty" gorm:"constraint:OnDelete:CASCADE;"`
}

// Answer belongs to one question. For short_answer questions the single
// correct answer holds the canonical text to match against.
type Answer struct {
	gorm.Model
	QuestionID  uint   `json:"question_id" gorm:"index;not null"`
	Text        string `json:"text" gorm:"not null"`
	IsCorrect   bool   `json:"is_correct" gorm:"default:false"`
	Explanation string `json:"explanation" gorm:"type:text"`
}
