package course

import (
	"edublog/models"
	blogModels "edublog/models/blog"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course levels
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Course represents a learning course made of ordered lessons
type Course struct {
	gorm.Model
	Title              string               `json:"title" gorm:"not null"`
	Slug               string               `json:"slug" gorm:"uniqueIndex;not null"`
	Description        string               `json:"description" gorm:"type:text"`
	InstructorID       uint                 `json:"instructor_id" gorm:"index;not null"`
	Instructor         models.User          `json:"instructor" gorm:"foreignKey:InstructorID"`
	CategoryID         *uint                `json:"category_id"`
	Category           *blogModels.Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Thumbnail          string               `json:"thumbnail"`
	Price              float64              `json:"price" gorm:"default:0"`
	Level              string               `json:"level" gorm:"default:'beginner'"` // beginner, intermediate, advanced
	Duration           uint                 `json:"duration" gorm:"default:0"`       // duration in minutes
	Prerequisites      string               `json:"prerequisites" gorm:"type:text"`
	LearningObjectives datatypes.JSON       `json:"learning_objectives"`
	Tags               datatypes.JSON       `json:"tags"`
	IsPublished        bool                 `json:"is_published" gorm:"default:false"`
	Lessons            []Lesson             `json:"lessons,omitempty" gorm:"constraint:OnDelete:CASCADE;"`
	IsDeleted          bool                 `json:"-" gorm:"default:false"`
}
