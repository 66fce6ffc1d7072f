package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hostel-complaints/internal/api/dto"
	"github.com/spec-kit/hostel-complaints/internal/domain"
	"github.com/spec-kit/hostel-complaints/internal/service"
)

// StaffHandler serves the staff directory for admins picking assignees.
type StaffHandler struct {
	directory *service.DirectoryService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(directory *service.DirectoryService) *StaffHandler {
	return &StaffHandler{directory: directory}
}

// List GET /staff?trade=. Staff identities, optionally filtered by trade.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	var trade *domain.Trade
	if raw := c.Query("trade"); raw != "" {
		t := domain.Trade(raw)
		trade = &t
	}

	staff, err := h.directory.ListStaff(c.Context(), trade)
	if err != nil {
		return err
	}
	items := make([]dto.UserIdentity, 0, len(staff))
	for i := range staff {
		items = append(items, *userIdentity(&staff[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
