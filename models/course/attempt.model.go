package course

import (
	"time"

	"gorm.io/gorm"
)

// QuizAttempt is one user's pass through a quiz. CompletedAt nil means the
// attempt is still in progress; once set, Score and Passed are final.
// Attempts are never deduplicated, a user may hold many per quiz.
type QuizAttempt struct {
	gorm.Model
	QuizID      uint           `json:"quiz_id" gorm:"index;not null"`
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at"`
	Score       *float64       `json:"score"`
	Passed      bool           `json:"passed" gorm:"default:false"`
	Responses   []QuizResponse `json:"responses,omitempty" gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE;"`
}

// QuizResponse records one graded answer within a submitted attempt.
// Rows are created only at submission time and never updated.
type QuizResponse struct {
	gorm.Model
	AttemptID    uint    `json:"attempt_id" gorm:"index;not null"`
	QuestionID   uint    `json:"question_id" gorm:"index;not null"`
	AnswerID     *uint   `json:"answer_id"`
	TextResponse string  `json:"text_response" gorm:"type:text"`
	IsCorrect    bool    `json:"is_correct" gorm:"default:false"`
	PointsEarned float64 `json:"points_earned" gorm:"default:0"`
}
