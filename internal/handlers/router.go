package handlers

import (
	"log/slog"
	"net/http"

	"rideshare-backend/internal/database"
	"rideshare-backend/internal/middleware"
	"rideshare-backend/internal/services"
	"rideshare-backend/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies is everything the HTTP layer needs. Hub may be nil, in which
// case /ws is not mounted.
type Dependencies struct {
	Store          database.Store
	Bookings       *services.BookingService
	Hub            *websocket.Hub
	Logger         *slog.Logger
	DemoUserID     string
	AllowedOrigins []string
}

// NewRouter wires middleware and routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	demoUser := middleware.DemoUser(deps.DemoUserID)

	if deps.Hub != nil {
		r.With(demoUser).Get("/ws", websocket.HandleWebSocket(deps.Hub))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(demoUser)

		r.Get("/user", GetCurrentUser(deps.Store, deps.Logger))
		r.Post("/user/device-token", RegisterDeviceToken(deps.Store, deps.Logger))

		r.Get("/services", GetServices(deps.Store, deps.Logger))
		r.Get("/rides", GetRides(deps.Store, deps.Logger))

		r.Get("/bookings", GetBookings(deps.Bookings, deps.Logger))
		r.Post("/bookings", CreateBooking(deps.Bookings, deps.Logger))
		r.Get("/bookings/quote", GetBookingQuote(deps.Bookings, deps.Logger))
		r.Patch("/bookings/{id}", UpdateBookingStatus(deps.Bookings, deps.Logger))
	})

	return r
}
