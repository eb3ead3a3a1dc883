package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/api/handler"
	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/api/middleware"
	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/domain"
	"github.com/Rakibul29h/LocalChefBazaar-Server/internal/core/ports"
)

// Deps carries the constructed collaborators the router wires to routes.
// Services are built in main so the background dispatcher can share them.
type Deps struct {
	Sessions ports.SessionService
	Users    ports.UserService
	Requests ports.RequestService
	Roles    middleware.RoleResolver
	// Touch receives the authenticated email for async last-seen updates.
	Touch func(email string)
	// AllowedOrigins is the CORS allow-list; credentials are always enabled
	// because the session rides in a cookie.
	AllowedOrigins []string

	DB  *mongo.Database
	RDB *redis.Client
	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.AllowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
	}))
	e.Use(echoprometheus.NewMiddleware("chefbazaar"))

	// --- Guards ---
	authGuard := middleware.Auth(d.Sessions, d.Touch)
	adminGuard := middleware.RequireRole(d.Roles, domain.RoleAdmin)

	// --- Session lifecycle (no auth: issuing and clearing the cookie) ---
	sessionHandler := handler.NewSessionHandler(d.Sessions)
	e.POST("/getToken", sessionHandler.GetToken)
	e.POST("/logout", sessionHandler.Logout)

	// --- Identity records ---
	userHandler := handler.NewUserHandler(d.Users)
	e.PUT("/user", userHandler.Save)
	e.PATCH("/user/makeFraud", userHandler.MakeFraud, authGuard, adminGuard)

	// --- Role-change workflow ---
	requestHandler := handler.NewRequestHandler(d.Requests)
	e.POST("/beAdminOrChef", requestHandler.Submit, authGuard)
	e.GET("/request", requestHandler.List, authGuard, adminGuard)
	e.PATCH("/approve", requestHandler.Approve, authGuard, adminGuard)
	e.PATCH("/reject", requestHandler.Reject, authGuard, adminGuard)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.DB, d.RDB)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
