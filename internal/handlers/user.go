package handlers

import (
	"errors"
	"net/http"
	"watog/internal/middleware"
	"watog/internal/services"
	"watog/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	accounts AccountService
}

func NewUserHandler(accounts AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

// Me 当前用户资料 + 排名 + 热门帖子
func (h *UserHandler) Me(c *gin.Context) {
	view, err := h.accounts.Me(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	OK(c, view)
}

func (h *UserHandler) EditMe(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil || patch == nil {
		Fail(c, http.StatusBadRequest, ErrInvalidRequestBody)
		return
	}

	user, err := h.accounts.EditSelf(c.Request.Context(), middleware.CurrentUser(c), patch)
	if err != nil {
		RespondError(c, err)
		return
	}
	OK(c, user.Profile())
}

func (h *UserHandler) Get(c *gin.Context) {
	raw := c.Param("id")
	noSuchUser := "No such user with id:" + raw

	id, ok := utils.ParseID(raw)
	if !ok {
		Fail(c, http.StatusBadRequest, noSuchUser)
		return
	}

	user, err := h.accounts.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			Fail(c, http.StatusBadRequest, noSuchUser)
			return
		}
		RespondError(c, err)
		return
	}
	OK(c, user.Profile())
}

// List 按白名单参数查询用户列表
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.accounts.ListAccounts(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		RespondError(c, err)
		return
	}
	OK(c, users)
}
