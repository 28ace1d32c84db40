package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"rental-listings/internal/domain/user"
	"rental-listings/internal/handler/api"
	"rental-listings/internal/handler/middleware"
	"rental-listings/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth    *api.AuthHandler
	Listing *api.ListingHandler
	Booking *api.BookingHandler
	Review  *api.ReviewHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware, logger *middleware.Logger) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, handlers, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		listings := apiGroup.Group("/listings")
		{
			landlordOnly := []gin.HandlerFunc{authMiddleware.RequireAuth(), authMiddleware.RequireRole(user.RoleLandlord)}
			tenantOnly := []gin.HandlerFunc{authMiddleware.RequireAuth(), authMiddleware.RequireRole(user.RoleTenant)}

			addRoutes(listings, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Listing.Search},
				{Method: http.MethodGet, Path: "/mine", Handler: h.Listing.ListMine, Mw: landlordOnly},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Listing.Get, Mw: []gin.HandlerFunc{authMiddleware.OptionalAuth()}},
				{Method: http.MethodPost, Path: "", Handler: h.Listing.Create, Mw: landlordOnly},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Listing.Update, Mw: landlordOnly},
				{Method: http.MethodPost, Path: "/:id/toggle-active", Handler: h.Listing.ToggleActive, Mw: landlordOnly},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Listing.Delete, Mw: landlordOnly},

				{Method: http.MethodPost, Path: "/:id/bookings", Handler: h.Booking.Create, Mw: tenantOnly},
				{Method: http.MethodGet, Path: "/:id/bookings", Handler: h.Booking.ListByListing, Mw: landlordOnly},

				{Method: http.MethodGet, Path: "/:id/reviews", Handler: h.Review.ListByListing},
				{Method: http.MethodPost, Path: "/:id/reviews", Handler: h.Review.Create, Mw: tenantOnly},
				{Method: http.MethodGet, Path: "/:id/rating-stats", Handler: h.Review.ListingRatingStats},
				{Method: http.MethodGet, Path: "/:id/can-review", Handler: h.Review.CanReview, Mw: tenantOnly},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Booking.ListMine, Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleTenant)}},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
				{Method: http.MethodPost, Path: "/:id/decision", Handler: h.Booking.Decide, Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleLandlord)}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Booking.Cancel, Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleTenant)}},
			})
		}

		reviews := apiGroup.Group("/reviews")
		{
			addRoutes(reviews, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: h.Review.Get},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Review.Update, Mw: []gin.HandlerFunc{authMiddleware.RequireAuth(), authMiddleware.RequireRole(user.RoleTenant)}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Review.Delete, Mw: []gin.HandlerFunc{authMiddleware.RequireAuth(), authMiddleware.RequireRole(user.RoleTenant)}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
