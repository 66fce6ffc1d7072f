package dto

import (
	"time"

	"github.com/spec-kit/hostel-complaints/internal/domain"
)

// CreateComplaintRequest payload.
type CreateComplaintRequest struct {
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Category    domain.ComplaintCategory `json:"category"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.ComplaintStatus `json:"status"`
}

// ComplaintResponse describes a complaint, optionally with the referenced
// identities attached for staff/admin listings.
type ComplaintResponse struct {
	ID          string                   `json:"id"`
	StudentID   string                   `json:"student_id"`
	AssignedTo  *string                  `json:"assigned_to"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Category    domain.ComplaintCategory `json:"category"`
	Status      domain.ComplaintStatus   `json:"status"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
	Author      *UserIdentity            `json:"author,omitempty"`
	Assignee    *UserIdentity            `json:"assignee,omitempty"`
}
