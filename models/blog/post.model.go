package blog

import (
	"time"

	"edublog/models"

	"gorm.io/gorm"
)

// Post statuses
const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
)

// Post represents a blog article
type Post struct {
	gorm.Model
	Title         string        `json:"title" gorm:"not null"`
	Slug          string        `json:"slug" gorm:"uniqueIndex;not null"`
	Content       string        `json:"content" gorm:"type:text"`
	Excerpt       string        `json:"excerpt" gorm:"type:text"`
	FeaturedImage string        `json:"featured_image"`
	AuthorID      uint          `json:"author_id" gorm:"index;not null"`
	Author        models.User   `json:"author" gorm:"foreignKey:AuthorID"`
	Categories    []Category    `json:"categories" gorm:"many2many:post_categories;"`
	Tags          []Tag         `json:"tags" gorm:"many2many:post_tags;"`
	Status        string        `json:"status" gorm:"default:'draft'"` // draft, scheduled, published
	Views         uint          `json:"views" gorm:"default:0"`
	Likes         []models.User `json:"-" gorm:"many2many:post_likes;"`
	Bookmarks     []models.User `json:"-" gorm:"many2many:post_bookmarks;"`
	PublishedAt   *time.Time    `json:"published_at"`
	PublishAt     *time.Time    `json:"publish_at"` // used by the scheduler for status=scheduled
	IsDeleted     bool          `json:"-" gorm:"default:false"`
}
