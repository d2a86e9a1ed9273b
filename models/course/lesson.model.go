package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lesson belongs to exactly one course; Order is unique within the course
type Lesson struct {
	gorm.Model
	CourseID    uint           `json:"course_id" gorm:"uniqueIndex:idx_course_order;not null"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	Content     string         `json:"content" gorm:"type:text"`
	Order       uint           `json:"order" gorm:"column:lesson_order;uniqueIndex:idx_course_order;not null"`
	Duration    uint           `json:"duration" gorm:"default:0"` // duration in minutes
	VideoURL    string         `json:"video_url"`
	IsPreview   bool           `json:"is_preview" gorm:"default:false"`
	Resources   datatypes.JSON `json:"resources"`
	IsDeleted   bool           `json:"-" gorm:"default:false"`
}
