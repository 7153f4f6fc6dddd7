package controllers

import (
	"net/http"

	apperrors "storefront-service/common/errors"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	AccessTokenCookie  = "sb-access-token"
	RefreshTokenCookie = "sb-refresh-token"
)

// SignInRequest is the sign-in form.
type SignInRequest struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type AuthController struct {
	provider     services.IdentityProvider
	secureCookie bool
}

func NewAuthController(provider services.IdentityProvider, secureCookie bool) *AuthController {
	return &AuthController{provider: provider, secureCookie: secureCookie}
}

// SignIn exchanges form credentials for session cookies.
func (ac *AuthController) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		c.String(http.StatusBadRequest, "Email and password are required")
		return
	}

	session, err := ac.provider.SignInWithPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		msg := err.Error()
		if appErr, ok := apperrors.As(err); ok {
			msg = appErr.Message
		}
		c.String(http.StatusInternalServerError, msg)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, session.AccessToken, 0, "/", "", ac.secureCookie, true)
	c.SetCookie(RefreshTokenCookie, session.RefreshToken, 0, "/", "", ac.secureCookie, true)
	c.Redirect(http.StatusFound, "/?login=success")
}
