package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SaorsaGrowth/saorsa-site-backend/middleware"
	"github.com/SaorsaGrowth/saorsa-site-backend/services"
	"github.com/SaorsaGrowth/saorsa-site-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostService implements services.PostServiceInterface for handler tests.
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) ListPosts(ctx context.Context) []types.Post {
	args := m.Called(ctx)
	return args.Get(0).([]types.Post)
}

func (m *MockPostService) GetPost(ctx context.Context, slug string) *types.Post {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*types.Post)
}

// compile-time check
var _ services.PostServiceInterface = (*MockPostService)(nil)

func buildPostRouter(h *PostHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/v1/posts", h.ListPosts)
	r.GET("/v1/posts/:slug", h.GetPost)
	return r
}

func TestListPosts(t *testing.T) {
	svc := new(MockPostService)
	svc.On("ListPosts", mock.Anything).Return([]types.Post{
		{Title: "Newest", Slug: "newest", PubDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "Oldest", Slug: "oldest", PubDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	})
	r := buildPostRouter(NewPostHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/v1/posts", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp types.PostListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Posts, 2)
	assert.Equal(t, "newest", resp.Posts[0].Slug)
}

func TestListPosts_EmptyOnFeedFailure(t *testing.T) {
	svc := new(MockPostService)
	svc.On("ListPosts", mock.Anything).Return([]types.Post{})
	r := buildPostRouter(NewPostHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/v1/posts", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, "feed failures must not surface as HTTP errors")

	var resp types.PostListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)
}

func TestGetPost_Found(t *testing.T) {
	svc := new(MockPostService)
	svc.On("GetPost", mock.Anything, "my-post-title").Return(&types.Post{
		Title: "My Post Title",
		Slug:  "my-post-title",
	})
	r := buildPostRouter(NewPostHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/v1/posts/my-post-title", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var post types.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.Equal(t, "My Post Title", post.Title)
}

func TestGetPost_NotFound(t *testing.T) {
	svc := new(MockPostService)
	svc.On("GetPost", mock.Anything, "missing").Return(nil)
	r := buildPostRouter(NewPostHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/v1/posts/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_FOUND", resp["type"])
}
