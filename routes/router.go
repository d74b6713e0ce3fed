package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kakage553656552/vue-forum/config"
	"github.com/kakage553656552/vue-forum/controllers"
	"github.com/kakage553656552/vue-forum/forum"
	"github.com/kakage553656552/vue-forum/middleware"
	"github.com/kakage553656552/vue-forum/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(svc *forum.Service) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(svc)
	postController := controllers.NewPostController(svc)
	replyController := controllers.NewReplyController(svc)
	categoryController := controllers.NewCategoryController(svc)
	userController := controllers.NewUserController(svc)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)

	api.GET("/categories", categoryController.ListCategories)
	api.GET("/categories/:id", categoryController.GetCategory)

	api.GET("/posts", postController.ListPosts)
	api.GET("/posts/:id", postController.GetPost)
	api.GET("/posts/:id/replies", replyController.ListReplies)
	api.GET("/replies/:id/children", replyController.ListChildReplies)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())

	protected.POST("/posts", postController.CreatePost)
	protected.PUT("/posts/:id", postController.UpdatePost)
	protected.DELETE("/posts/:id", postController.DeletePost)
	protected.PATCH("/posts/:id/toggle-pinned", postController.TogglePinned)
	protected.POST("/posts/:id/replies", replyController.CreateReply)

	protected.GET("/user/profile", authController.Profile)
	protected.PUT("/user/profile", authController.UpdateProfile)
	protected.PUT("/user/avatar", authController.UpdateAvatar)
	protected.GET("/user/posts", postController.ListMyPosts)

	protected.GET("/users", userController.ListUsers)
	protected.GET("/users/:id", userController.GetUser)
	protected.GET("/users/:id/posts", userController.ListUserPosts)
	protected.PUT("/users/:id/role", userController.UpdateUserRole)
	protected.DELETE("/users/:id", userController.DeleteUser)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	return r
}
