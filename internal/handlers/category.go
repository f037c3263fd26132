package handlers

import (
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	posts PostService
}

func NewCategoryHandler(posts PostService) *CategoryHandler {
	return &CategoryHandler{posts: posts}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.posts.ListCategories(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	OK(c, categories)
}
