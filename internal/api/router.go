package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/gatehouse/auth-api/docs"
	"github.com/gatehouse/auth-api/internal/api/handler"
	"github.com/gatehouse/auth-api/internal/api/middleware"
	"github.com/gatehouse/auth-api/internal/core/ports"
)

// Deps carries the explicitly constructed collaborators the router wires
// into handlers. Everything is injected; the router owns no singletons.
type Deps struct {
	Log    zerolog.Logger
	DB     *mongo.Database
	Redis  *redis.Client
	Users  ports.UserRepository
	Roles  ports.RoleRepository
	Tokens ports.TokenService
	Auth   ports.AuthService
	Cookie handler.CookieConfig
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Cookie)
	userHandler := handler.NewUserHandler(deps.Users)
	roleHandler := handler.NewRoleHandler(deps.Roles)
	healthHandler := handler.NewHealthHandler(deps.DB, deps.Redis)

	// --- Access gates ---
	authenticated := middleware.Authenticated(deps.Cookie.Name, deps.Tokens)
	moderatorOnly := middleware.Moderator(deps.Users, deps.Roles)
	adminOnly := middleware.Admin(deps.Users, deps.Roles)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Gated routes ---
	e.GET("/users/me", userHandler.Me, authenticated)
	e.GET("/users/:id", userHandler.GetByID, authenticated, adminOnly)
	e.GET("/roles/:name", roleHandler.GetByName, authenticated, moderatorOnly)

	// --- Operational surface ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
