package router

import (
	"context"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stemsi/cbity-backend/internal/config"
	"github.com/stemsi/cbity-backend/internal/handler"
	"github.com/stemsi/cbity-backend/internal/middleware"
	"github.com/stemsi/cbity-backend/internal/model"
	"github.com/stemsi/cbity-backend/internal/response"
	"github.com/stemsi/cbity-backend/internal/session"
)

const sessionWait = 10 * time.Second

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Mode      *handler.ModeHandler
	School    *handler.SchoolHandler
	User      *handler.UserHandler
	Subject   *handler.SubjectHandler
	Question  *handler.QuestionHandler
	Exam      *handler.ExamHandler
	Attempt   *handler.AttemptHandler
	Result    *handler.ResultHandler
	Dashboard *handler.DashboardHandler
	WS        *handler.WSHandler
	System    *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// ctx bounds background work owned by the router, such as rate limiter
// sweeps.
func SetupRouter(
	ctx context.Context,
	sessions *session.Manager,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Workbooks are already zip-compressed.
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		Quality:   middleware.DefaultBrotliConfig.Quality,
		MinLength: middleware.DefaultBrotliConfig.MinLength,
		Skipper: func(c *gin.Context) bool {
			return strings.HasSuffix(c.Request.URL.Path, "/export")
		},
	}))

	router.GET("/health", handlers.System.Health)

	staff := []model.Role{model.RoleSuperAdmin, model.RoleSchoolAdmin, model.RoleTeacher}
	admins := []model.Role{model.RoleSuperAdmin, model.RoleSchoolAdmin}

	authLimiter := middleware.NewRateLimiter(ctx, 30, time.Minute)

	api := router.Group("/api/v1")
	api.Use(middleware.AwaitSession(sessions, sessionWait), middleware.NoStore())

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := api.Group("/auth")
	{
		auth.POST("/login", authLimiter.Middleware(), handlers.Auth.Login)
		auth.POST("/signup", authLimiter.Middleware(), handlers.Auth.Signup)
		auth.GET("/verify", authLimiter.Middleware(), handlers.Auth.Verify)
		auth.POST("/logout", handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireIdentity(sessions), handlers.Auth.Me)
	}

	// ─── 2. Data Source Switch ─────────────────────────────────────────
	api.GET("/mode", handlers.Mode.Get)
	api.PUT("/mode",
		middleware.RequireNonRelease(),
		middleware.RequireIdentity(sessions),
		middleware.RequireRole(model.RoleSuperAdmin),
		handlers.Mode.Set,
	)

	// ─── 3. Data Group (Signed In + Role) ──────────────────────────────
	data := api.Group("")
	data.Use(middleware.RequireIdentity(sessions))
	{
		data.GET("/schools", middleware.RequireRole(model.RoleSuperAdmin), handlers.School.GetAll)
		data.POST("/schools", middleware.RequireRole(model.RoleSuperAdmin), handlers.School.Create)

		data.GET("/users", middleware.RequireRole(staff...), handlers.User.GetAll)
		data.POST("/users", middleware.RequireRole(admins...), handlers.User.Create)

		data.GET("/subjects", handlers.Subject.GetAll)
		data.POST("/subjects", middleware.RequireRole(admins...), handlers.Subject.Create)

		data.GET("/questions", middleware.RequireRole(staff...), handlers.Question.GetAll)
		data.POST("/questions", middleware.RequireRole(staff...), handlers.Question.Create)

		data.GET("/exams", handlers.Exam.GetAll)
		data.GET("/exams/:id", handlers.Exam.GetByID)
		data.POST("/exams", middleware.RequireRole(staff...), handlers.Exam.Create)

		data.POST("/attempts", handlers.Attempt.Create)
		data.PATCH("/attempts/:id", handlers.Attempt.Update)
		data.GET("/attempts/:id/answers", handlers.Attempt.GetAnswers)
		data.POST("/attempts/:id/answers", handlers.Attempt.CreateAnswer)

		data.GET("/results", handlers.Result.GetAll)
		data.POST("/results", middleware.RequireRole(staff...), handlers.Result.Create)
		data.GET("/results/export", middleware.RequireRole(staff...), handlers.Result.Export)

		data.GET("/dashboard", middleware.RequireRole(staff...), handlers.Dashboard.GetDashboardData)
	}

	// ─── 4. WebSocket Group ────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/session", handlers.WS.SessionStream)
	}

	return router
}
