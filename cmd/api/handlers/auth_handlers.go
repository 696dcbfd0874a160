package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-cms/cmd/api/dto"
	"blog-cms/cmd/api/services"
	"blog-cms/internal/logger"
)

// LoginHandler godoc
// @Summary      Dashboard login
// @Description  Exchanges the configured admin credentials for a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequestDTO  true  "Credentials"
// @Success      200  {object}  dto.LoginResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /api/auth/login [post]
func LoginHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.LoginRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
			return
		}

		token, exp, err := authSvc.Login(req.Username, req.Password)
		if err != nil {
			logger.WarnWithFields("login failed", logger.Fields{
				"username":   req.Username,
				"client_ip":  c.ClientIP(),
				"request_id": c.Writer.Header().Get("X-Request-Id"),
			})
			respondError(c, err, "login failed")
			return
		}
		c.JSON(http.StatusOK, dto.LoginResponseDTO{Success: true, Token: token, ExpiresAt: exp})
	}
}
