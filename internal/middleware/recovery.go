package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/street_sports/internal/apperror"
	"github.com/festy23/street_sports/internal/httpresponse"
)

// Recovery turns a handler panic into a 500 INTERNAL_ERROR response.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recovery(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			logger.Errorw("panic recovered",
				"panic", rec,
				"method", c.Request.Method,
				"path", c.FullPath(),
				"user_id", UserID(c),
				"stack", string(debug.Stack()),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, httpresponse.ErrorResponse{
				Success: false,
				Code:    apperror.ErrInternal.Code,
				Message: apperror.ErrInternal.Message,
			})
		}()

		c.Next()
	}
}
