package handlers

import (
	"net/http"
	"watog/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	accounts AccountService
}

func NewAuthHandler(accounts AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

type signupRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required"`
	FirstName string  `json:"first_name" binding:"max=100"`
	LastName  string  `json:"last_name" binding:"max=100"`
	UserName  *string `json:"user_name" binding:"omitempty,max=100,excludes=@"`
	CellPhone string  `json:"cell_phone" binding:"max=32"`
	Country   string  `json:"country" binding:"max=100"`
	Hospital  string  `json:"hospital" binding:"max=200"`
}

// Signup 注册新用户，返回不含密码的资料
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindError(c, err)
		return
	}

	user, err := h.accounts.Signup(c.Request.Context(), services.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserName:  req.UserName,
		CellPhone: req.CellPhone,
		Country:   req.Country,
		Hospital:  req.Hospital,
	})
	if err != nil {
		RespondError(c, err)
		return
	}

	OK(c, user.Profile())
}

type loginRequest struct {
	Email    string `json:"email"`
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

// Login 支持邮箱或用户名登录；所有失败都返回同一条 401
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusUnauthorized, msgInvalidLogin)
		return
	}

	identifier := req.Email
	if identifier == "" {
		identifier = req.UserName
	}

	token, user, err := h.accounts.Login(c.Request.Context(), identifier, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}

	OK(c, gin.H{
		"token": token,
		"user":  user.Profile(),
	})
}
