package components

import (
	"rental-listings/internal/handler"
	"rental-listings/internal/handler/api"
	"rental-listings/internal/handler/middleware"
	"rental-listings/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
		api.NewAuthHandler,
		api.NewListingHandler,
		api.NewBookingHandler,
		api.NewReviewHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(auth *api.AuthHandler, listing *api.ListingHandler, booking *api.BookingHandler, review *api.ReviewHandler) handler.Handlers {
	return handler.Handlers{
		Auth:    auth,
		Listing: listing,
		Booking: booking,
		Review:  review,
	}
}
