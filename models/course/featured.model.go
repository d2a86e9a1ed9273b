package course

import "gorm.io/gorm"

// FeaturedCourse pins a course on the landing page, lowest priority first
type FeaturedCourse struct {
	gorm.Model
	CourseID uint   `json:"course_id" gorm:"uniqueIndex;not null"`
	Course   Course `json:"course" gorm:"foreignKey:CourseID"`
	Priority int    `json:"priority" gorm:"default:0"`
}

// Testimonial is public marketing copy, read-only over the API
type Testimonial struct {
	gorm.Model
	Name    string `json:"name" gorm:"not null"`
	Role    string `json:"role"`
	Content string `json:"content" gorm:"type:text"`
	Avatar  string `json:"avatar"`
	Rating  int    `json:"rating"` // 1-5
}
