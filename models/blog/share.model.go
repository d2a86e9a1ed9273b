package blog

import "gorm.io/gorm"

// Supported share platforms
var SharePlatforms = map[string]bool{
	"facebook": true,
	"twitter":  true,
	"linkedin": true,
	"telegram": true,
	"whatsapp": true,
}

// Share records a post being shared to an external platform
type Share struct {
	gorm.Model
	PostID     uint   `json:"post_id" gorm:"index;not null"`
	Platform   string `json:"platform" gorm:"not null"`
	SharedByID *uint  `json:"shared_by"` // nil for anonymous shares
}
