package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/todoapi/auth"
	"github.com/kbukum/todoapi/auth/authctx"
	"github.com/kbukum/todoapi/errors"
)

// Auth returns a Gin middleware that requires an "Authorization: Bearer"
// header and resolves it with validator. The resolved principal is stored
// in the request context via authctx.Set. Every failure is answered with
// 401 and a WWW-Authenticate challenge.
func Auth(validator auth.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortWithError(c, errors.Unauthorized(""))
			return
		}

		principal, err := validator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			appErr, isApp := errors.AsAppError(err)
			if !isApp {
				appErr = errors.Unauthorized("").WithCause(err)
			}
			_ = c.Error(err)
			abortWithError(c, appErr)
			return
		}

		c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), principal))
		c.Next()
	}
}

// BearerToken extracts the credentials from an Authorization header value.
// The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortWithError(c *gin.Context, appErr *errors.AppError) {
	for k, v := range appErr.Headers {
		c.Header(k, v)
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
