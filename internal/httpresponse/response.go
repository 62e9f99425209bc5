// Package httpresponse renders the JSON envelopes shared by all handlers.
package httpresponse

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/festy23/street_sports/internal/apperror"
)

// ErrorResponse is the error envelope. Error details are merged into the
// top level object next to these fields.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error renders err. Unclassified errors are logged and hidden behind a 500.
// A nil logger discards.
func Error(c *gin.Context, logger *zap.SugaredLogger, err error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	appErr, ok := apperror.As(err)
	if !ok {
		logger.Errorw("unhandled error",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		appErr = apperror.ErrInternal
	} else if appErr.Kind == apperror.KindInternal || appErr.Kind == apperror.KindPaymentProcessing {
		logger.Errorw("request failed",
			"path", c.FullPath(),
			"code", appErr.Code,
			"error", err,
		)
	}

	body := gin.H{}
	for k, v := range appErr.Details {
		body[k] = v
	}
	body["success"] = false
	body["code"] = appErr.Code
	body["message"] = appErr.Message
	c.AbortWithStatusJSON(appErr.Status(), body)
}

// BindError renders a request binding failure as INVALID_REQUEST, naming the
// offending fields when the validator reports them.
func BindError(c *gin.Context, err error) {
	message := "invalid request body"
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, describeField(fe))
		}
		message = strings.Join(fields, "; ")
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Success: false,
		Code:    apperror.ErrInvalidRequest.Code,
		Message: message,
	})
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must have exactly %s items", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// Success renders a 2xx body with success:true added.
func Success(c *gin.Context, status int, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["success"] = true
	c.JSON(status, body)
}
