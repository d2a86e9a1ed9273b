package blog

import "gorm.io/gorm"

type Tag struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null"`
	Slug      string `json:"slug" gorm:"uniqueIndex;not null"`
	IsDeleted bool   `json:"-" gorm:"default:false"`
}
