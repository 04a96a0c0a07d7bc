package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/jobhive/jobhive/internal/auth"
	"github.com/jobhive/jobhive/internal/config"
	"github.com/jobhive/jobhive/internal/domain/user"
	"github.com/jobhive/jobhive/internal/http/handlers"
	"github.com/jobhive/jobhive/internal/http/middlewares"
	"github.com/jobhive/jobhive/internal/identity"
	"github.com/jobhive/jobhive/internal/mailer"
	"github.com/jobhive/jobhive/internal/observability"
	"github.com/jobhive/jobhive/internal/ratelimit"
	"github.com/jobhive/jobhive/internal/store/mongostore"
)

const (
	maxBodyBytes     = 1 << 20 // 1 MiB
	categoryCacheTTL = 30 * time.Second
)

type RouterConfig struct {
	Cfg     config.Config
	Store   *mongostore.Store
	JWT     *auth.Manager
	Mail    mailer.Mailer
	Prom    *observability.Prom
	PromReg *prometheus.Registry
	Limiter ratelimit.Window
	Logger  *slog.Logger
}

func NewRouter(rc RouterConfig) *gin.Engine {
	if rc.Cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware, outermost first
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(rc.Logger))
	if rc.Cfg.TracingEnabled {
		r.Use(otelgin.Middleware("jobhive-api"))
	}
	if rc.Prom != nil {
		r.Use(rc.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(rc.Cfg.CORSOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))

	// the limiter runs before the guard chain, so only the client IP is
	// available as a key
	rl := middlewares.NewRateLimiter(rc.Limiter, rc.Cfg.RateLimit)
	r.Use(rl.Middleware(middlewares.KeyByIP))

	// guards
	resolver := identity.NewResolver(rc.Store)
	guard := middlewares.NewAuthMiddleware(rc.JWT, resolver)

	// handlers
	cookie := handlers.CookieConfig{
		Domain: rc.Cfg.CookieDomain,
		Secure: rc.Cfg.Env != "dev",
		MaxAge: rc.Cfg.SessionTTL,
	}
	authH := handlers.NewAuthHandler(rc.Store, rc.JWT, rc.Mail, cookie, rc.Logger)
	usersH := handlers.NewUsersHandler(rc.Store, rc.Mail, rc.Logger)
	categoriesH := handlers.NewCategoriesHandler(rc.Store, categoryCacheTTL)
	// the cached category listing embeds jobs, so job writes drop it too
	jobsH := handlers.NewJobsHandler(rc.Store, categoriesH.InvalidateList)
	applicationsH := handlers.NewApplicationsHandler(rc.Store, rc.Mail, rc.Logger)
	contactsH := handlers.NewContactsHandler(rc.Store)

	// infra
	r.GET("/healthz", handlers.Healthz())
	r.GET("/readyz", handlers.Readyz(rc.Store))
	if rc.PromReg != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(rc.PromReg, promhttp.HandlerOpts{})))
	}

	// auth
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/logout", authH.Logout)
		authGroup.GET("/session", authH.Session)
		authGroup.GET("/me", guard.RequireAuth(), authH.Me)
		authGroup.POST("/verify-email", guard.RequireEmailActionToken(auth.PurposeVerifyEmail), authH.VerifyEmail)
		authGroup.POST("/resend-verification", guard.RequireAuth(), authH.ResendVerification)
	}

	// users
	usersGroup := r.Group("/users", guard.RequireAuth())
	{
		usersGroup.GET("", guard.RequireRole(user.RoleAdmin), usersH.List)
		usersGroup.GET("/:id", guard.RequireSameUserOrAdmin("id"), usersH.Get)
		usersGroup.PATCH("/:id", guard.RequireSameUserOrAdmin("id"), usersH.Update)
		usersGroup.PATCH("/:id/password", guard.RequireSameUser("id"), usersH.ChangePassword)
		usersGroup.DELETE("/:id", guard.RequireSameUserOrAdmin("id"), usersH.Delete)
	}

	// jobs
	r.GET("/jobs", jobsH.List)
	r.GET("/jobs/mine", guard.RequireAuth(), guard.RequireRole(user.RolePoster), jobsH.Mine)
	r.GET("/jobs/:id", jobsH.Get)
	r.POST("/jobs", guard.RequireAuth(), guard.RequireRole(user.RolePoster), jobsH.Create)
	r.PATCH("/jobs/:id", guard.RequireAuth(), guard.RequireRole(user.RolePoster), jobsH.Update)
	r.DELETE("/jobs/:id", guard.RequireAuth(), guard.RequireRole(user.RolePoster), jobsH.Delete)
	r.PATCH("/jobs/:id/feature", guard.RequireAuth(), guard.RequireRole(user.RoleAdmin), jobsH.Feature)

	// applications
	r.POST("/jobs/:id/applications", guard.RequireAuth(), guard.RequireRole(user.RoleSeeker), applicationsH.Apply)
	r.GET("/jobs/:id/applications", guard.RequireAuth(), guard.RequireRole(user.RolePoster), applicationsH.ListByJob)
	r.GET("/applications/mine", guard.RequireAuth(), guard.RequireRole(user.RoleSeeker), applicationsH.Mine)
	r.PATCH("/applications/:id", guard.RequireAuth(), guard.RequireRole(user.RolePoster), applicationsH.UpdateStatus)

	// categories
	r.GET("/categories", categoriesH.List)
	r.GET("/categories/:id", categoriesH.Get)
	r.POST("/categories", guard.RequireAuth(), guard.RequireRole(user.RoleAdmin), categoriesH.Create)
	r.PATCH("/categories/:id", guard.RequireAuth(), guard.RequireRole(user.RoleAdmin), categoriesH.Update)
	r.DELETE("/categories/:id", guard.RequireAuth(), guard.RequireRole(user.RoleAdmin), categoriesH.Delete)

	// contacts
	r.POST("/contacts", guard.RequireAuth(), contactsH.Create)
	r.GET("/contacts", guard.RequireAuth(), guard.RequireRole(user.RoleAdmin), contactsH.List)
	r.GET("/contacts/:id", guard.RequireAuth(), guard.RequireRole(user.RoleAdmin), contactsH.Get)
	r.DELETE("/contacts/:id", guard.RequireAuth(), guard.RequireRole(user.RoleAdmin), contactsH.Delete)

	return r
}
