package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"rideshare-backend/internal/database"
	"rideshare-backend/internal/middleware"
	"rideshare-backend/internal/models"
	"rideshare-backend/internal/services"
	"rideshare-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// CreateBooking books a service for the acting user and records the
// companion ride
func CreateBooking(bookings *services.BookingService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.GetUserIDFromContext(r)

		var req models.CreateBookingRequest
		if errs := decodeAndValidate(w, r, &req); errs != nil {
			utils.ValidationError(w, "Invalid booking data", errs)
			return
		}

		booking, err := bookings.Create(r.Context(), userID, req)
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			utils.ValidationError(w, "Invalid booking data", []models.FieldError{{Field: verr.Field, Message: verr.Message}})
			return
		}
		if err != nil {
			logger.Error("❌ failed to create booking", "user_id", userID, "service_id", req.ServiceID, "error", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to create booking")
			return
		}

		utils.Success(w, booking)
	}
}

// GetBookings lists the acting user's bookings in creation order
func GetBookings(bookings *services.BookingService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.GetUserIDFromContext(r)

		list, err := bookings.List(r.Context(), userID)
		if err != nil {
			logger.Error("❌ failed to get bookings", "user_id", userID, "error", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to get bookings")
			return
		}
		utils.Success(w, list)
	}
}

// UpdateBookingStatus overwrites a booking's status with any non-empty value
func UpdateBookingStatus(bookings *services.BookingService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.UpdateBookingStatusRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Status is required")
			return
		}

		booking, err := bookings.UpdateStatus(r.Context(), id, req.Status)
		switch {
		case errors.Is(err, services.ErrStatusRequired):
			utils.Error(w, http.StatusBadRequest, "Status is required")
			return
		case errors.Is(err, database.ErrNotFound):
			utils.Error(w, http.StatusNotFound, "Booking not found")
			return
		case err != nil:
			logger.Error("❌ failed to update booking", "booking_id", id, "error", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to update booking")
			return
		}

		utils.Success(w, booking)
	}
}

// GetBookingQuote previews the price of a service, including the
// points-plus-card split, without booking anything
func GetBookingQuote(bookings *services.BookingService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.GetUserIDFromContext(r)

		serviceID := strings.TrimSpace(r.URL.Query().Get("serviceId"))
		if serviceID == "" {
			utils.ValidationError(w, "Invalid quote request", []models.FieldError{{Field: "serviceId", Message: "is required"}})
			return
		}

		scheduled := false
		if raw := r.URL.Query().Get("scheduled"); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				utils.ValidationError(w, "Invalid quote request", []models.FieldError{{Field: "scheduled", Message: "must be a boolean"}})
				return
			}
			scheduled = v
		}

		quote, err := bookings.Quote(r.Context(), userID, serviceID, scheduled)
		if errors.Is(err, services.ErrServiceNotFound) {
			utils.Error(w, http.StatusNotFound, "Service not found")
			return
		}
		if err != nil {
			logger.Error("❌ failed to quote booking", "service_id", serviceID, "error", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to quote booking")
			return
		}

		utils.Success(w, quote)
	}
}
