package course

import (
	"strings"

	"edublog/models"

	"gorm.io/gorm"
)

// Note is a user's private annotation on a lesson, optionally shared with others
type Note struct {
	gorm.Model
	LessonID   uint          `json:"lesson_id" gorm:"index;not null"`
	UserID     uint          `json:"user_id" gorm:"index;not null"`
	Content    string        `json:"content" gorm:"type:text;not null"`
	IsShared   bool          `json:"is_shared" gorm:"default:false"`
	SharedWith []models.User `json:"-" gorm:"many2many:note_shares;"`
	Tags       string        `json:"tags"` // comma-separated
}

// TagList splits the comma-separated Tags field into trimmed values
func (n *Note) TagList() []string {
	if n.Tags == "" {
		return nil
	}
	parts := strings.Split(n.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
