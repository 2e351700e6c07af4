package handlers

import (
	"log/slog"
	"net/http"

	"rideshare-backend/internal/database"
	"rideshare-backend/internal/middleware"
	"rideshare-backend/pkg/utils"
)

// GetServices lists the bookable services
func GetServices(store database.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, err := store.GetAllServices(r.Context())
		if err != nil {
			logger.Error("❌ failed to get services", "error", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to get services")
			return
		}
		utils.Success(w, services)
	}
}

// GetRides returns the acting user's ride history, newest first
func GetRides(store database.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.GetUserIDFromContext(r)

		rides, err := store.GetUserRides(r.Context(), userID)
		if err != nil {
			logger.Error("❌ failed to get rides", "user_id", userID, "error", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to get rides")
			return
		}
		utils.Success(w, rides)
	}
}
