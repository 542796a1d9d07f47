package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/studyshare/internal/app/models/dto"
	"github.com/yigit/studyshare/internal/app/services"
	"github.com/yigit/studyshare/internal/middleware"
	"github.com/yigit/studyshare/internal/pkg/apperrors"
)

// CookieConfig describes the session cookie
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthController handles authentication related requests
type AuthController struct {
	authService *services.AuthService
	cookie      CookieConfig
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, cookie CookieConfig, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a new account and logs it in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration information"
// @Success 201 {object} models.User
// @Failure 400 {object} dto.ErrorResponse "Invalid request or username/email already taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, sess, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, sess)
	ctx.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary User login
// @Description Verifies credentials and opens a session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} models.User
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid username or password"
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, sess, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, sess)
	ctx.JSON(http.StatusOK, user)
}

// Logout godoc
// @Summary Logout
// @Description Destroys the current session, if any
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router /logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if token, err := ctx.Cookie(c.cookie.Name); err == nil {
		c.authService.Logout(ctx.Request.Context(), token)
	} else {
		c.logger.Debug().Msg("Logout without session cookie")
	}

	c.clearSessionCookie(ctx)
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Logged out"})
}

// GetCurrentUser godoc
// @Summary Current user
// @Description Returns the user of the current session
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /user [get]
func (c *AuthController) GetCurrentUser(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	user, err := c.authService.GetCurrentUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

func (c *AuthController) setSessionCookie(ctx *gin.Context, sess *services.AuthSession) {
	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.cookie.Name, sess.Token, maxAge, "/", "", c.cookie.Secure, true)
}

func (c *AuthController) clearSessionCookie(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.cookie.Name, "", -1, "/", "", c.cookie.Secure, true)
}
