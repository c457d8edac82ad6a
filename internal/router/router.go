package router

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"forestinv/internal/auth"
	"forestinv/internal/config"
	"forestinv/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokens *auth.TokenService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	plotHandler *handler.PlotHandler,
	treeHandler *handler.TreeHandler,
	speciesHandler *handler.SpeciesHandler,
	syncLogHandler *handler.SyncLogHandler,
	exportHandler *handler.ExportHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     strings.Split(cfg.CORSOrigins, ","),
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: true,
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// The access gate runs on every API route. It never rejects by itself;
	// requests without a valid token continue unauthenticated and get turned
	// away at the route policy.
	api.Use(auth.Middleware(tokens))

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/migrate-passwords", authHandler.MigratePasswords)

	// Session routes
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/verify", authHandler.Verify, auth.RequirePolicy(auth.PolicyReader))
	api.POST("/auth/change-password", authHandler.ChangePassword, auth.RequirePolicy(auth.PolicyReader))

	// User administration
	users := api.Group("/users", auth.RequirePolicy(auth.PolicyAdmin))
	users.GET("", userHandler.ListUsers)
	users.GET("/:id", userHandler.GetUser)
	users.POST("", userHandler.CreateUser)
	users.PUT("/:id", userHandler.UpdateUser)
	users.DELETE("/:id", userHandler.DeleteUser)

	// Plot routes
	api.GET("/plots", plotHandler.ListPlots, auth.RequirePolicy(auth.PolicyReader))
	api.GET("/plots/:id", plotHandler.GetPlot, auth.RequirePolicy(auth.PolicyReader))
	api.POST("/plots", plotHandler.CreatePlot, auth.RequirePolicy(auth.PolicyStaff))
	api.PUT("/plots/:id", plotHandler.UpdatePlot, auth.RequirePolicy(auth.PolicyStaff))
	api.DELETE("/plots/:id", plotHandler.DeletePlot, auth.RequirePolicy(auth.PolicyStaff))

	// Tree routes
	api.GET("/trees", treeHandler.ListTrees, auth.RequirePolicy(auth.PolicyReader))
	api.GET("/trees/:id", treeHandler.GetTree, auth.RequirePolicy(auth.PolicyReader))
	api.POST("/trees", treeHandler.CreateTree, auth.RequirePolicy(auth.PolicyStaff))
	api.PUT("/trees/:id", treeHandler.UpdateTree, auth.RequirePolicy(auth.PolicyStaff))
	api.DELETE("/trees/:id", treeHandler.DeleteTree, auth.RequirePolicy(auth.PolicyStaff))

	// Species catalog
	api.GET("/species", speciesHandler.ListSpecies, auth.RequirePolicy(auth.PolicyReader))
	api.GET("/species/:id", speciesHandler.GetSpecies, auth.RequirePolicy(auth.PolicyReader))
	api.POST("/species", speciesHandler.CreateSpecies, auth.RequirePolicy(auth.PolicyStaff))
	api.PUT("/species/:id", speciesHandler.UpdateSpecies, auth.RequirePolicy(auth.PolicyStaff))
	api.DELETE("/species/:id", speciesHandler.DeleteSpecies, auth.RequirePolicy(auth.PolicyStaff))

	// Field sync logs
	api.GET("/sync-logs", syncLogHandler.ListSyncLogs, auth.RequirePolicy(auth.PolicyReader))
	api.GET("/sync-logs/stats", syncLogHandler.SyncStats, auth.RequirePolicy(auth.PolicyReader))
	api.GET("/sync-logs/:id", syncLogHandler.GetSyncLog, auth.RequirePolicy(auth.PolicyReader))
	api.POST("/sync-logs", syncLogHandler.CreateSyncLog, auth.RequirePolicy(auth.PolicyStaff))

	// Exports
	export := api.Group("/export", auth.RequirePolicy(auth.PolicyReader))
	export.GET("/summary", exportHandler.Summary)
	export.GET("/trees.csv", exportHandler.TreesCSV)
	export.GET("/trees.kml", exportHandler.TreesKML)
	export.GET("/trees.kmz", exportHandler.TreesKMZ)
	export.GET("/plots.kmz", exportHandler.PlotsKMZ)
	export.GET("/all", exportHandler.All)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
