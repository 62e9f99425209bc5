package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/festy23/street_sports/internal/apperror"
	"github.com/festy23/street_sports/internal/auth"
	"github.com/festy23/street_sports/internal/httpresponse"
)

// Context keys set by Auth.
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
)

// TokenParser verifies bearer tokens.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

var errMissingToken = apperror.New(apperror.KindUnauthorized, "UNAUTHORIZED", "No token, authorization denied")
var errBadToken = apperror.New(apperror.KindUnauthorized, "UNAUTHORIZED", "Token is not valid")

// Auth rejects requests without a valid "Authorization: Bearer" token and
// stores the caller's id under ContextUserID.
func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			httpresponse.Error(c, nil, errMissingToken)
			return
		}

		claims, err := parser.Parse(strings.TrimSpace(token))
		if err != nil {
			httpresponse.Error(c, nil, errBadToken)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Next()
	}
}

// UserID returns the authenticated caller's id.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// UserEmail returns the authenticated caller's email claim, if any.
func UserEmail(c *gin.Context) string {
	return c.GetString(ContextUserEmail)
}
