package blog

import "gorm.io/gorm"

// Category groups posts by topic
type Category struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`
	Image       string `json:"image"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}
