package blogController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"edublog/config"
	"edublog/database"
	"edublog/middleware"
	"edublog/models"
	blogModels "edublog/models/blog"
	blogRoutes "edublog/routers/blogRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type blogFixture struct {
	app    *fiber.App
	db     *gorm.DB
	author models.User
}

func setupBlogApp(t *testing.T) *blogFixture {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	blogRoutes.SetupBlogRoutes(app)

	f := &blogFixture{app: app, db: db}
	f.author = models.User{Name: "Ada", Email: "ada@example.com", Role: "USER"}
	require.NoError(t, db.Create(&f.author).Error)
	return f
}

func (f *blogFixture) publishedPost(t *testing.T, title, slug string, tags []blogModels.Tag) blogModels.Post {
	now := time.Now()
	post := blogModels.Post{
		Title:       title,
		Slug:        slug,
		Content:     "content",
		AuthorID:    f.author.ID,
		Status:      blogModels.PostStatusPublished,
		PublishedAt: &now,
		Tags:        tags,
	}
	require.NoError(t, f.db.Create(&post).Error)
	return post
}

func (f *blogFixture) token(t *testing.T) string {
	token, err := middleware.GenerateJWT(f.author.ID, f.author.Name, f.author.Role, f.author.Email)
	require.NoError(t, err)
	return token
}

func (f *blogFixture) request(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestRelatedPostsShareATag(t *testing.T) {
	f := setupBlogApp(t)

	tag := blogModels.Tag{Name: "Go", Slug: "go"}
	require.NoError(t, f.db.Create(&tag).Error)

	f.publishedPost(t, "First", "first", []blogModels.Tag{tag})
	sibling := f.publishedPost(t, "Second", "second", []blogModels.Tag{tag})
	f.publishedPost(t, "Unrelated", "unrelated", nil)

	status, env := f.request(t, http.MethodGet, "/blog/post/first/related", "", nil)
	require.Equal(t, http.StatusOK, status)

	var related []blogModels.Post
	require.NoError(t, json.Unmarshal(env.Data, &related))
	require.Len(t, related, 1)
	assert.Equal(t, sibling.Slug, related[0].Slug)
}

func TestRelatedPostsExcludeUnpublished(t *testing.T) {
	f := setupBlogApp(t)

	tag := blogModels.Tag{Name: "Go", Slug: "go"}
	require.NoError(t, f.db.Create(&tag).Error)

	f.publishedPost(t, "First", "first", []blogModels.Tag{tag})

	draft := blogModels.Post{
		Title:    "Draft",
		Slug:     "draft",
		AuthorID: f.author.ID,
		Status:   blogModels.PostStatusDraft,
		Tags:     []blogModels.Tag{tag},
	}
	require.NoError(t, f.db.Create(&draft).Error)

	status, env := f.request(t, http.MethodGet, "/blog/post/first/related", "", nil)
	require.Equal(t, http.StatusOK, status)

	var related []blogModels.Post
	require.NoError(t, json.Unmarshal(env.Data, &related))
	assert.Empty(t, related)
}

func TestToggleLikeFlipsBothWays(t *testing.T) {
	f := setupBlogApp(t)
	post := f.publishedPost(t, "First", "first", nil)
	token := f.token(t)

	status, _ := f.request(t, http.MethodPost, "/blog/post/first/like", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, f.db.Model(&post).Association("Likes").Count())

	status, _ = f.request(t, http.MethodPost, "/blog/post/first/like", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, f.db.Model(&post).Association("Likes").Count())
}

func TestViewCounterIncrements(t *testing.T) {
	f := setupBlogApp(t)
	post := f.publishedPost(t, "First", "first", nil)

	for i := 0; i < 3; i++ {
		status, _ := f.request(t, http.MethodPost, "/blog/post/first/view", "", nil)
		require.Equal(t, http.StatusOK, status)
	}

	var stored blogModels.Post
	require.NoError(t, f.db.First(&stored, post.ID).Error)
	assert.EqualValues(t, 3, stored.Views)
}

func TestCommentTreeKeepsChronologicalOrder(t *testing.T) {
	f := setupBlogApp(t)
	post := f.publishedPost(t, "First", "first", nil)

	base := time.Now().Add(-time.Hour)
	makeComment := func(content string, parentID *uint, offset time.Duration) blogModels.Comment {
		comment := blogModels.Comment{
			PostID:     post.ID,
			AuthorID:   f.author.ID,
			ParentID:   parentID,
			Content:    content,
			IsApproved: true,
		}
		comment.CreatedAt = base.Add(offset)
		require.NoError(t, f.db.Create(&comment).Error)
		return comment
	}

	first := makeComment("first", nil, 0)
	makeComment("second", nil, time.Minute)
	makeComment("reply-b", &first.ID, 3*time.Minute)
	makeComment("reply-a", &first.ID, 2*time.Minute)
	makeComment("third", nil, 4*time.Minute)

	status, env := f.request(t, http.MethodGet, "/blog/post/first/comments", "", nil)
	require.Equal(t, http.StatusOK, status)

	type node struct {
		Content string `json:"content"`
		Replies []node `json:"replies"`
	}
	var roots []node
	require.NoError(t, json.Unmarshal(env.Data, &roots))

	require.Len(t, roots, 3)
	assert.Equal(t, "first", roots[0].Content)
	assert.Equal(t, "second", roots[1].Content)
	assert.Equal(t, "third", roots[2].Content)

	require.Len(t, roots[0].Replies, 2)
	assert.Equal(t, "reply-a", roots[0].Replies[0].Content)
	assert.Equal(t, "reply-b", roots[0].Replies[1].Content)
}

func TestShareRequiresPlatform(t *testing.T) {
	f := setupBlogApp(t)
	f.publishedPost(t, "First", "first", nil)

	status, _ := f.request(t, http.MethodPost, "/blog/post/first/share", "", fiber.Map{})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = f.request(t, http.MethodPost, "/blog/post/first/share", "", fiber.Map{"platform": "twitter"})
	assert.Equal(t, http.StatusOK, status)
}
