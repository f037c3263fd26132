package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"watog/internal/logger"
	"watog/internal/middleware"
	"watog/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	ErrInvalidRequestBody = "invalid_request_body"
	ErrInternal           = "internal_error"
	msgInvalidLogin       = "Invalid email or password!"
)

type apiError struct {
	status int
	code   string
}

var errorStatusMap = map[error]apiError{
	services.ErrInvalidCredentials: {http.StatusUnauthorized, msgInvalidLogin},
	services.ErrInvalidToken:       {http.StatusUnauthorized, "Invalid Authorization"},
	services.ErrInvalidUser:        {http.StatusUnauthorized, "Invalid User"},
	services.ErrUserExists:         {http.StatusBadRequest, "user_exists"},
	services.ErrUserNotFound:       {http.StatusBadRequest, "user_not_found"},
	services.ErrInvalidSettings:    {http.StatusBadRequest, "invalid_settings"},
	services.ErrInvalidField:       {http.StatusBadRequest, "invalid_field"},
	services.ErrInvalidUserName:    {http.StatusBadRequest, "invalid_user_name"},
	services.ErrInvalidQuery:       {http.StatusBadRequest, "invalid_query"},
	services.ErrInvalidCode:        {http.StatusBadRequest, "invalid_code"},
	services.ErrExpiredCode:        {http.StatusBadRequest, "expired_code"},
	services.ErrAlreadyVerified:    {http.StatusBadRequest, "already_verified"},
	services.ErrNoCellPhone:        {http.StatusBadRequest, "no_cell_phone"},
	services.ErrCategoryNotFound:   {http.StatusBadRequest, "category_not_found"},
	services.ErrPostNotFound:       {http.StatusBadRequest, "post_not_found"},
	services.ErrAlreadyVoted:       {http.StatusBadRequest, "already_voted"},
	services.ErrAlreadyReported:    {http.StatusBadRequest, "already_reported"},
	services.ErrInvalidReportType:  {http.StatusBadRequest, "invalid_report_type"},
	services.ErrInvalidPicture:     {http.StatusBadRequest, "invalid_picture"},
	services.ErrPictureTooLarge:    {http.StatusBadRequest, "picture_too_large"},
	services.ErrUploadDisabled:     {http.StatusBadRequest, "upload_disabled"},
}

var errorReporter middleware.ErrorReporter

// SetErrorReporter installs the sink for unexpected errors.
func SetErrorReporter(r middleware.ErrorReporter) {
	errorReporter = r
}

func init() {
	// 校验错误使用 json 字段名
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// OK writes {status: true, data}. A nil data is omitted.
func OK(c *gin.Context, data any) {
	body := gin.H{"status": true}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusOK, body)
}

// Fail writes {status: false, error}.
func Fail(c *gin.Context, code int, errPayload any) {
	c.AbortWithStatusJSON(code, gin.H{"status": false, "error": errPayload})
}

// RespondError maps a service error onto the response envelope.
func RespondError(c *gin.Context, err error) {
	var notAllowed *services.QueryNotAllowedError
	if errors.As(err, &notAllowed) {
		Fail(c, http.StatusBadRequest, gin.H{"msg": "Query not allowed", "data": notAllowed.Query})
		return
	}

	code, status := lookupError(err)
	if status != http.StatusInternalServerError {
		Fail(c, status, code)
		return
	}

	reportError(c, err)
	Fail(c, http.StatusInternalServerError, ErrInternal)
}

func lookupError(err error) (string, int) {
	for target, apiErr := range errorStatusMap {
		if errors.Is(err, target) {
			return apiErr.code, apiErr.status
		}
	}
	return ErrInternal, http.StatusInternalServerError
}

func reportError(c *gin.Context, err error) {
	logger.Log.Errorw("request failed", "path", c.FullPath(), "request_id", c.GetString(middleware.RequestIDKey), "err", err)
	_ = c.Error(err)
	if errorReporter != nil {
		errorReporter.CaptureException(err)
	}
}

// RespondBindError reports field level validation failures, or a generic
// body error when the payload could not be decoded.
func RespondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		Fail(c, http.StatusBadRequest, gin.H{"msg": "Invalid request", "data": fields})
		return
	}
	Fail(c, http.StatusBadRequest, ErrInvalidRequestBody)
}

// Healthz 存活检查
func Healthz(c *gin.Context) {
	OK(c, gin.H{"status": "ok"})
}
