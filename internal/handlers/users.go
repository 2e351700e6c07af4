package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"rideshare-backend/internal/database"
	"rideshare-backend/internal/middleware"
	"rideshare-backend/internal/models"
	"rideshare-backend/pkg/utils"
)

// GetCurrentUser returns the acting user without credentials
func GetCurrentUser(store database.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.GetUserIDFromContext(r)

		user, err := store.GetUser(r.Context(), userID)
		if errors.Is(err, database.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			logger.Error("❌ failed to get user", "user_id", userID, "error", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to get user")
			return
		}

		utils.Success(w, user.ToUserResponse())
	}
}

// RegisterDeviceToken stores an FCM token so booking updates reach the
// user's phone
func RegisterDeviceToken(store database.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.GetUserIDFromContext(r)

		var req models.RegisterDeviceTokenRequest
		if errs := decodeAndValidate(w, r, &req); errs != nil {
			utils.ValidationError(w, "Invalid device token", errs)
			return
		}

		err := store.AddUserDeviceToken(r.Context(), userID, req.Token)
		if errors.Is(err, database.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			logger.Error("❌ failed to register device token", "user_id", userID, "error", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to register device token")
			return
		}

		logger.Info("📱 device token registered", "user_id", userID)
		w.WriteHeader(http.StatusNoContent)
	}
}
