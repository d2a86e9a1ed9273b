package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello-world", Slugify("Hello, World!"))
	assert.Equal(t, "go-1-23-released", Slugify("  Go 1.23 Released  "))
	assert.Equal(t, "a-b", Slugify("a---b"))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestUniqueSlug(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:slug_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	type post struct {
		ID   uint
		Slug string
	}
	require.NoError(t, db.AutoMigrate(&post{}))

	assert.Equal(t, "hello", UniqueSlug(db, "posts", "hello"))

	require.NoError(t, db.Create(&post{Slug: "hello"}).Error)
	assert.Equal(t, "hello-2", UniqueSlug(db, "posts", "hello"))

	require.NoError(t, db.Create(&post{Slug: "hello-2"}).Error)
	assert.Equal(t, "hello-3", UniqueSlug(db, "posts", "hello"))

	assert.Equal(t, "untitled", UniqueSlug(db, "posts", ""))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("short", 10))
	assert.Equal(t, "abc", Excerpt("abcdef", 3))
}

func TestGenerateOTP(t *testing.T) {
	otp := GenerateOTP()
	assert.Len(t, otp, 6)
	for _, r := range otp {
		assert.True(t, r >= '0' && r <= '9')
	}
}
