package course

import (
	"edublog/models"

	"gorm.io/gorm"
)

// Discussion is an enrollment-gated thread on a course
type Discussion struct {
	gorm.Model
	CourseID uint              `json:"course_id" gorm:"index;not null"`
	UserID   uint              `json:"user_id" gorm:"index;not null"`
	User     models.User       `json:"user" gorm:"foreignKey:UserID"`
	Title    string            `json:"title" gorm:"not null"`
	Content  string            `json:"content" gorm:"type:text"`
	Replies  []DiscussionReply `json:"replies,omitempty" gorm:"constraint:OnDelete:CASCADE;"`
}

type DiscussionReply struct {
	gorm.Model
	DiscussionID uint        `json:"discussion_id" gorm:"index;not null"`
	UserID       uint        `json:"user_id" gorm:"index;not null"`
	User         models.User `json:"user" gorm:"foreignKey:UserID"`
	Content      string      `json:"content" gorm:"type:text;not null"`
}
