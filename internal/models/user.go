package models

import "time"

// DemoUserID is the account every API call acts on until real sessions exist.
const DemoUserID = "user-1"

type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Password      string    `json:"-"` // bcrypt hash, never returned
	PointsBalance string    `json:"pointsBalance"`
	IsVerified    bool      `json:"isVerified"`
	PhoneNumber   *string   `json:"phoneNumber"`
	Email         *string   `json:"email"`
	CreatedAt     time.Time `json:"createdAt"`
	DeviceTokens  []string  `json:"-"` // FCM registration tokens
}

// UserResponse is the user as the client sees it (no password, no tokens)
type UserResponse struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	PointsBalance string    `json:"pointsBalance"`
	IsVerified    bool      `json:"isVerified"`
	PhoneNumber   *string   `json:"phoneNumber"`
	Email         *string   `json:"email"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RegisterDeviceTokenRequest is the request body for POST /api/user/device-token
type RegisterDeviceTokenRequest struct {
	Token string `json:"token" validate:"required,max=4096"`
}

func (u *User) ToUserResponse() UserResponse {
	return UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		PointsBalance: u.PointsBalance,
		IsVerified:    u.IsVerified,
		PhoneNumber:   u.PhoneNumber,
		Email:         u.Email,
		CreatedAt:     u.CreatedAt,
	}
}
