package response

import "time"

type LoginResponse struct {
	Success   bool      `json:"success"`
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
