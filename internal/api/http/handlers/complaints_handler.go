package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hostel-complaints/internal/api/dto"
	"github.com/spec-kit/hostel-complaints/internal/auth"
	"github.com/spec-kit/hostel-complaints/internal/domain"
	"github.com/spec-kit/hostel-complaints/internal/service"
	apperrors "github.com/spec-kit/hostel-complaints/pkg/util"
)

// ComplaintsHandler serves the complaint lifecycle endpoints.
type ComplaintsHandler struct {
	lifecycle *service.LifecycleService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(lifecycle *service.LifecycleService) *ComplaintsHandler {
	return &ComplaintsHandler{lifecycle: lifecycle}
}

// Create POST /complaints.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, err := h.lifecycle.Submit(c.Context(), actor, service.SubmitInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": complaintResponse(complaint)})
}

// ListMine GET /complaints/my.
func (h *ComplaintsHandler) ListMine(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	complaints, err := h.lifecycle.ListForStudent(c.Context(), actor)
	if err != nil {
		return err
	}
	items := make([]dto.ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, complaintResponse(&complaints[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListAssigned GET /complaints/assigned.
func (h *ComplaintsHandler) ListAssigned(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	views, err := h.lifecycle.ListForStaff(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintViewResponses(views)})
}

// ListAll GET /complaints/all.
func (h *ComplaintsHandler) ListAll(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	views, err := h.lifecycle.ListAll(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintViewResponses(views)})
}

// UpdateStatus PUT /complaints/:id/status.
func (h *ComplaintsHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, err := h.lifecycle.UpdateStatus(c.Context(), actor, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintResponse(complaint)})
}

// Assign PUT /complaints/:id/assign/:staffId.
func (h *ComplaintsHandler) Assign(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	complaint, err := h.lifecycle.Assign(c.Context(), actor, c.Params("id"), c.Params("staffId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintResponse(complaint)})
}

func complaintResponse(complaint *domain.Complaint) dto.ComplaintResponse {
	return dto.ComplaintResponse{
		ID:          complaint.ID,
		StudentID:   complaint.StudentID,
		AssignedTo:  complaint.AssignedTo,
		Title:       complaint.Title,
		Description: complaint.Description,
		Category:    complaint.Category,
		Status:      complaint.Status,
		CreatedAt:   complaint.CreatedAt,
		UpdatedAt:   complaint.UpdatedAt,
	}
}

func complaintViewResponses(views []service.ComplaintView) []dto.ComplaintResponse {
	items := make([]dto.ComplaintResponse, 0, len(views))
	for i := range views {
		resp := complaintResponse(&views[i].Complaint)
		resp.Author = userIdentity(views[i].Author)
		resp.Assignee = userIdentity(views[i].Assignee)
		items = append(items, resp)
	}
	return items
}

func userIdentity(user *domain.User) *dto.UserIdentity {
	if user == nil {
		return nil
	}
	return &dto.UserIdentity{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		Trade:      user.Trade,
		RollNo:     user.RollNo,
		HostelName: user.HostelName,
		RoomNumber: user.RoomNumber,
	}
}
