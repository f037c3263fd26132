package handlers

import (
	"errors"
	"net/http"
	"strings"
	"watog/internal/middleware"
	"watog/internal/services"

	"github.com/gin-gonic/gin"
)

const verifyPage = "verify/result.html"

type VerifyHandler struct {
	verification VerificationService
}

func NewVerifyHandler(verification VerificationService) *VerifyHandler {
	return &VerifyHandler{verification: verification}
}

func (h *VerifyHandler) SendEmail(c *gin.Context) {
	if _, err := h.verification.RequestEmailCode(c.Request.Context(), middleware.CurrentUser(c)); err != nil {
		RespondError(c, err)
		return
	}
	OK(c, nil)
}

func (h *VerifyHandler) SendSMS(c *gin.Context) {
	if _, err := h.verification.RequestSMSCode(c.Request.Context(), middleware.CurrentUser(c)); err != nil {
		RespondError(c, err)
		return
	}
	OK(c, nil)
}

// VerifyEmail is opened from the emailed link, so it answers with a page.
func (h *VerifyHandler) VerifyEmail(c *gin.Context) {
	user, err := h.verification.RedeemEmail(c.Request.Context(), c.Param("code"))
	if err != nil {
		status, title, message := emailFailure(err)
		if status == http.StatusInternalServerError {
			reportError(c, err)
		}
		c.HTML(status, verifyPage, gin.H{"Title": title, "Message": message})
		return
	}

	c.HTML(http.StatusOK, verifyPage, gin.H{
		"Success": true,
		"Title":   "Email verified",
		"Name":    strings.TrimSpace(user.FirstName + " " + user.LastName),
		"Email":   user.Email,
	})
}

func emailFailure(err error) (int, string, string) {
	switch {
	case errors.Is(err, services.ErrInvalidCode):
		return http.StatusBadRequest, "Invalid Link!", "This verification link is not valid."
	case errors.Is(err, services.ErrExpiredCode), errors.Is(err, services.ErrUserNotFound):
		return http.StatusBadRequest, "Expired Link!", "This verification link has expired. Please request a new one."
	case errors.Is(err, services.ErrAlreadyVerified):
		return http.StatusBadRequest, "Already verified", "Your email address is already verified!"
	default:
		return http.StatusInternalServerError, "Something went wrong", "Please try again later."
	}
}

func (h *VerifyHandler) VerifySMS(c *gin.Context) {
	user, err := h.verification.RedeemSMS(c.Request.Context(), c.Param("code"), middleware.CurrentUser(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	OK(c, user.Profile())
}
