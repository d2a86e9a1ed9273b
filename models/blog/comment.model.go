package blog

import (
	"edublog/models"

	"gorm.io/gorm"
)

// Comment is attached to a post; replies reference a parent comment
type Comment struct {
	gorm.Model
	PostID     uint          `json:"post_id" gorm:"index;not null"`
	AuthorID   uint          `json:"author_id" gorm:"index;not null"`
	Author     models.User   `json:"author" gorm:"foreignKey:AuthorID"`
	ParentID   *uint         `json:"parent_id" gorm:"index"`
	Content    string        `json:"content" gorm:"type:text;not null"`
	Likes      []models.User `json:"-" gorm:"many2many:comment_likes;"`
	IsApproved bool          `json:"is_approved" gorm:"default:false"`
	IsDeleted  bool          `json:"-" gorm:"default:false"`
}
