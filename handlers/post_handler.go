package handlers

import (
	"net/http"

	apperrors "github.com/SaorsaGrowth/saorsa-site-backend/errors"
	"github.com/SaorsaGrowth/saorsa-site-backend/services"
	"github.com/SaorsaGrowth/saorsa-site-backend/types"
	"github.com/gin-gonic/gin"
)

// PostHandler serves the normalized insights posts to the site frontend.
type PostHandler struct {
	posts services.PostServiceInterface
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts services.PostServiceInterface) *PostHandler {
	return &PostHandler{posts: posts}
}

// ListPosts godoc
// @Summary      List insights posts
// @Description  Returns all feed posts, newest first. Feed failures degrade
// @Description  to an empty list rather than an error.
// @Tags         posts
// @Produce      json
// @Success      200  {object}  types.PostListResponse
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts := h.posts.ListPosts(c.Request.Context())
	c.JSON(http.StatusOK, types.PostListResponse{Posts: posts, Count: len(posts)})
}

// GetPost godoc
// @Summary      Get a single post by slug
// @Tags         posts
// @Produce      json
// @Param        slug  path      string  true  "Post slug"
// @Success      200   {object}  types.Post
// @Failure      404   {object}  types.ErrorResponse
// @Router       /posts/{slug} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	slug := c.Param("slug")

	post := h.posts.GetPost(c.Request.Context(), slug)
	if post == nil {
		_ = c.Error(apperrors.NotFound("Post", slug))
		return
	}

	c.JSON(http.StatusOK, post)
}
