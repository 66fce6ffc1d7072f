package dto

import (
	"time"

	"github.com/spec-kit/hostel-complaints/internal/domain"
)

// SignupRequest payload for student signup.
type SignupRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	RollNo     string `json:"roll_no"`
	HostelName string `json:"hostel_name"`
	RoomNumber string `json:"room_number"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserIdentity is the identity projection attached to listings and auth
// responses. Password hashes never leave the service.
type UserIdentity struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Role       domain.Role   `json:"role"`
	Trade      *domain.Trade `json:"trade,omitempty"`
	RollNo     string        `json:"roll_no,omitempty"`
	HostelName string        `json:"hostel_name,omitempty"`
	RoomNumber string        `json:"room_number,omitempty"`
}

// AuthResponse standard response for login.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserIdentity `json:"user"`
}
