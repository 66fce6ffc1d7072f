package domain

import "time"

// Role enumerates caller roles.
type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// Trade enumerates staff specializations used to route complaints.
type Trade string

const (
	TradeElectrician Trade = "electrician"
	TradePlumber     Trade = "plumber"
	TradeCarpenter   Trade = "carpenter"
)

// User is the domain model for students, staff, and admins.
// Trade is set only for staff accounts.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Trade        *Trade
	RollNo       string
	HostelName   string
	RoomNumber   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
