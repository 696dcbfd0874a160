package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"blog-cms/cmd/api/auth"
	"blog-cms/cmd/api/dto"
	"blog-cms/internal/logger"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrBadScheme    = errors.New("authorization header must use the Bearer scheme")
)

// TokenParser validates an access token and returns (subject, role).
type TokenParser interface {
	ParseAccessToken(token string) (string, string, error)
}

// AdminAuthMiddleware 는 대시보드 요청의 Bearer 토큰을 검증하고 role 이 admin 인지 확인한다.
func AdminAuthMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail(err.Error()))
			return
		}

		subject, role, err := parser.ParseAccessToken(token)
		if err != nil {
			logger.WarnWithFields("rejected dashboard token", logger.Fields{
				"path":      c.FullPath(),
				"client_ip": c.ClientIP(),
				"error":     err.Error(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("invalid or expired token"))
			return
		}

		if role != auth.RoleAdmin {
			logger.Log.Warnf("access denied: %s has role %q, want admin", subject, role)
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail("admin role required"))
			return
		}

		c.Set("subject", subject)
		c.Next()
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", ErrBadScheme
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
