// api/handlers/blog_handlers.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cristalclean/api/content"
)

type BlogHandlers struct {
	Posts *content.Library
}

func NewBlogHandlers(posts *content.Library) *BlogHandlers {
	return &BlogHandlers{Posts: posts}
}

func (h *BlogHandlers) List(c *gin.Context) {
	posts := h.Posts.List()
	if posts == nil {
		posts = []content.Post{}
	}
	c.JSON(http.StatusOK, posts)
}

func (h *BlogHandlers) Get(c *gin.Context) {
	post, ok := h.Posts.Get(c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}
