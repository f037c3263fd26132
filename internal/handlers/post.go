package handlers

import (
	"errors"
	"net/http"
	"watog/internal/db"
	"watog/internal/middleware"
	"watog/internal/services"
	"watog/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	posts PostService
}

func NewPostHandler(posts PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

type createPostRequest struct {
	Picture     string `json:"picture" form:"picture"`
	Description string `json:"description" form:"description" binding:"max=5000"`
	CategoryID  uint   `json:"category_id" form:"category_id" binding:"required"`
}

// Create accepts JSON with a picture URL, or multipart with a picture file.
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBind(&req); err != nil {
		RespondBindError(c, err)
		return
	}

	in := services.CreatePostInput{
		Picture:     req.Picture,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	}

	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		header, err := c.FormFile("picture")
		if err != nil && !errors.Is(err, http.ErrMissingFile) {
			Fail(c, http.StatusBadRequest, ErrInvalidRequestBody)
			return
		}
		if header != nil {
			if header.Size > services.MaxPictureSize {
				RespondError(c, services.ErrPictureTooLarge)
				return
			}
			file, err := header.Open()
			if err != nil {
				RespondError(c, err)
				return
			}
			defer file.Close()
			in.Upload = file
		}
	}

	post, err := h.posts.CreatePost(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		RespondError(c, err)
		return
	}
	OK(c, post)
}

type listPostsQuery struct {
	CategoryID uint `form:"category_id"`
	UserID     uint `form:"user_id"`
	Limit      int  `form:"limit" binding:"min=0"`
	Offset     int  `form:"offset" binding:"min=0"`
}

func (h *PostHandler) List(c *gin.Context) {
	var q listPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		Fail(c, http.StatusBadRequest, "invalid_query")
		return
	}

	posts, err := h.posts.ListPosts(c.Request.Context(), db.PostFilter{
		CategoryID: q.CategoryID,
		UserID:     q.UserID,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	OK(c, posts)
}

func (h *PostHandler) Detail(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		RespondError(c, services.ErrPostNotFound)
		return
	}

	post, err := h.posts.GetPost(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	OK(c, post)
}
