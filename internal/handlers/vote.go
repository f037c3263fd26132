package handlers

import (
	"watog/internal/middleware"
	"watog/internal/services"
	"watog/internal/utils"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	posts PostService
}

func NewVoteHandler(posts PostService) *VoteHandler {
	return &VoteHandler{posts: posts}
}

type voteRequest struct {
	Commend *bool `json:"commend" binding:"required"`
}

// Vote 对帖子点赞 (commend=true) 或踩 (commend=false)，每人每帖一次
func (h *VoteHandler) Vote(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		RespondError(c, services.ErrPostNotFound)
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindError(c, err)
		return
	}

	post, err := h.posts.Vote(c.Request.Context(), middleware.CurrentUser(c), id, *req.Commend)
	if err != nil {
		RespondError(c, err)
		return
	}
	OK(c, post)
}

type reportRequest struct {
	Type        string `json:"type"`
	Description string `json:"description" binding:"max=500"`
}

func (h *VoteHandler) Report(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		RespondError(c, services.ErrPostNotFound)
		return
	}

	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindError(c, err)
		return
	}

	report, err := h.posts.Report(c.Request.Context(), middleware.CurrentUser(c), id, req.Type, req.Description)
	if err != nil {
		RespondError(c, err)
		return
	}
	OK(c, report)
}
