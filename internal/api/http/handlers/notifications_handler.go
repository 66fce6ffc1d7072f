package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hostel-complaints/internal/api/dto"
	"github.com/spec-kit/hostel-complaints/internal/auth"
	"github.com/spec-kit/hostel-complaints/internal/service"
	apperrors "github.com/spec-kit/hostel-complaints/pkg/util"
)

// NotificationsHandler serves the notification outbox endpoints.
type NotificationsHandler struct {
	notifications  *service.NotificationService
	adminFeedLimit int
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notifications *service.NotificationService, adminFeedLimit int) *NotificationsHandler {
	if adminFeedLimit <= 0 {
		adminFeedLimit = 200
	}
	return &NotificationsHandler{notifications: notifications, adminFeedLimit: adminFeedLimit}
}

// List GET /notifications. Unread notifications for the caller, newest first.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	notifications, err := h.notifications.ListUnread(c.Context(), actor.ID)
	if err != nil {
		return err
	}
	items := make([]dto.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		items = append(items, dto.NotificationResponse{
			ID:        notification.ID,
			Message:   notification.Message,
			CreatedAt: notification.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Acknowledge PUT /notifications/:id/read. Deletes the notification.
func (h *NotificationsHandler) Acknowledge(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id := c.Params("id")
	if err := h.notifications.Acknowledge(c.Context(), id, actor.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AcknowledgeResponse{Deleted: true, ID: id}})
}

// ListAllAdmin GET /notifications/all. Bounded diagnostic feed.
func (h *NotificationsHandler) ListAllAdmin(c *fiber.Ctx) error {
	views, err := h.notifications.ListAllForAdmin(c.Context(), h.adminFeedLimit)
	if err != nil {
		return err
	}
	items := make([]dto.NotificationResponse, 0, len(views))
	for i := range views {
		items = append(items, dto.NotificationResponse{
			ID:        views[i].Notification.ID,
			Message:   views[i].Notification.Message,
			CreatedAt: views[i].Notification.CreatedAt,
			Recipient: userIdentity(views[i].Recipient),
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
