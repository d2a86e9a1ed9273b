package utils

import (
	"log"
	"time"

	"edublog/database"
	blogModels "edublog/models/blog"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[POST-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// publishScheduledPosts flips scheduled posts to published once their
// publish time has passed
func publishScheduledPosts() {
	db := database.Database.Db
	now := time.Now()

	var duePosts []blogModels.Post
	if err := db.Where("status = ? AND publish_at IS NOT NULL AND publish_at <= ? AND is_deleted = ?",
		blogModels.PostStatusScheduled, now, false).
		Find(&duePosts).Error; err != nil {
		logScheduler("Error fetching scheduled posts: " + err.Error())
		return
	}

	for _, post := range duePosts {
		post.Status = blogModels.PostStatusPublished
		post.PublishedAt = &now
		if err := db.Save(&post).Error; err != nil {
			logScheduler("Error publishing post " + post.Slug + ": " + err.Error())
			continue
		}
		logScheduler("Published scheduled post: " + post.Slug)
	}
}

// StartPostScheduler runs the scheduled-post publisher every minute
func StartPostScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("* * * * *", publishScheduledPosts); err != nil {
		log.Fatalf("Failed to register post scheduler: %v", err)
	}

	c.Start()
	logScheduler("Post scheduler started")
	return c
}
