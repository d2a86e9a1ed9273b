package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment links one user to one course; unique per (user, course)
type Enrollment struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"uniqueIndex:idx_user_course;not null"`
	CourseID    uint       `json:"course_id" gorm:"uniqueIndex:idx_user_course;not null"`
	Course      Course     `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	IsCompleted bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
}

// LessonProgress tracks one enrollment's completion of one lesson.
// A row exists per (enrollment, lesson) pair for every lesson in the course;
// enrollment creates them eagerly, quiz passes upsert as a fallback.
type LessonProgress struct {
	gorm.Model
	EnrollmentID uint       `json:"enrollment_id" gorm:"uniqueIndex:idx_enrollment_lesson;not null"`
	LessonID     uint       `json:"lesson_id" gorm:"uniqueIndex:idx_enrollment_lesson;not null"`
	IsCompleted  bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt  *time.Time `json:"completed_at"`
}
