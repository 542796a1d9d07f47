package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yigit/studyshare/internal/app/controllers"
	"github.com/yigit/studyshare/internal/app/models/dto"
	"github.com/yigit/studyshare/internal/middleware"
)

// Controllers groups the handlers mounted under /api
type Controllers struct {
	Auth     *controllers.AuthController
	Category *controllers.CategoryController
	Note     *controllers.NoteController
	Rating   *controllers.RatingController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl Controllers,
	authMiddleware *middleware.AuthMiddleware,
	maxUploadBody int64,
) {
	api := router.Group("/api")
	api.Use(authMiddleware.LoadSession())

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
	})

	// --- Auth routes ---
	api.POST("/register", ctrl.Auth.Register)
	api.POST("/login", ctrl.Auth.Login)
	api.POST("/logout", ctrl.Auth.Logout)
	api.GET("/user", authMiddleware.RequireAuth(), ctrl.Auth.GetCurrentUser)

	// --- Public routes ---
	api.GET("/categories", ctrl.Category.GetCategories)
	api.GET("/categories/:id", ctrl.Category.GetCategory)

	notes := api.Group("/notes")
	{
		notes.GET("", ctrl.Note.GetNotes)
		notes.GET("/category/:categoryId", ctrl.Note.GetNotesByCategory)
		notes.GET("/user/:userId", ctrl.Note.GetNotesByUser)
		notes.GET("/:id", ctrl.Note.GetNote)
		notes.GET("/:id/download", ctrl.Note.DownloadNote)
		notes.GET("/:id/ratings", ctrl.Rating.GetRatings)
	}

	// --- Authenticated routes ---
	authenticated := notes.Group("")
	authenticated.Use(authMiddleware.RequireAuth())
	{
		authenticated.POST("", middleware.LimitBody(maxUploadBody), ctrl.Note.CreateNote)
		authenticated.POST("/:id/rate", ctrl.Rating.RateNote)
		authenticated.GET("/:id/myrating", ctrl.Rating.GetMyRating)
	}
}

// SetupFallback answers unknown /api paths with a JSON 404. When staticDir is
// set, other paths are served from it, falling back to index.html so the
// single-page client can route them.
func SetupFallback(router *gin.Engine, staticDir string) {
	router.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if staticDir == "" || strings.HasPrefix(path, "/api") {
			detail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Not found")
			c.JSON(http.StatusNotFound, dto.NewErrorResponse(detail))
			return
		}

		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusNotFound)
			return
		}

		candidate := filepath.Join(staticDir, filepath.FromSlash(filepath.Clean("/"+path)))
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			c.File(candidate)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	})
}
