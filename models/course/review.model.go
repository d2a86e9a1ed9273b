package course

import (
	"edublog/models"

	"gorm.io/gorm"
)

// Review is one enrolled user's rating of a course; unique per (user, course).
// Course ratings are always recomputed from reviews on read, never cached.
type Review struct {
	gorm.Model
	CourseID uint        `json:"course_id" gorm:"uniqueIndex:idx_review_user_course;not null"`
	UserID   uint        `json:"user_id" gorm:"uniqueIndex:idx_review_user_course;not null"`
	User     models.User `json:"user" gorm:"foreignKey:UserID"`
	Rating   int         `json:"rating" gorm:"not null"` // 1-5
	Comment  string      `json:"comment" gorm:"type:text"`
}
