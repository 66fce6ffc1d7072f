package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/hostel-complaints/internal/domain"
	"github.com/spec-kit/hostel-complaints/internal/events"
	"github.com/spec-kit/hostel-complaints/internal/repository"
	apperrors "github.com/spec-kit/hostel-complaints/pkg/util"
)

// NotificationService owns the per-recipient outbox. It subscribes to
// lifecycle events and writes notification rows; outbox failures are recorded
// and swallowed so they never fail the complaint mutation that triggered them.
type NotificationService struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NotificationView pairs a notification with its recipient identity for the
// admin diagnostic feed.
type NotificationView struct {
	Notification domain.Notification
	Recipient    *domain.User
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// RegisterHandlers subscribes to lifecycle events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventComplaintSubmitted, n.handleComplaintSubmitted)
	n.dispatcher.Subscribe(events.EventComplaintAssigned, n.handleComplaintAssigned)
	n.dispatcher.Subscribe(events.EventComplaintStatusChanged, n.handleStatusChanged)
}

// handleComplaintSubmitted broadcasts to every admin. Zero admins is not an
// error; the absence is only logged.
func (n *NotificationService) handleComplaintSubmitted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ComplaintSubmittedPayload)
	if !ok {
		return nil
	}
	admins, err := n.users.ListByRole(ctx, domain.RoleAdmin, nil)
	if err != nil {
		n.recordFailure("admin lookup", event, err)
		return err
	}
	if len(admins) == 0 {
		n.logger.Info("no admins found to notify for new complaint",
			zap.String("complaint_id", event.ComplaintID))
		return nil
	}

	message := "New complaint submitted: " + payload.Title
	created := 0
	for _, admin := range admins {
		if n.enqueue(ctx, event, admin.ID, message) {
			created++
		}
	}
	n.logger.Info("admin notifications created",
		zap.Int("count", created),
		zap.String("complaint_id", event.ComplaintID))
	return nil
}

func (n *NotificationService) handleComplaintAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ComplaintAssignedPayload)
	if !ok {
		return nil
	}
	n.enqueue(ctx, event, payload.AssigneeID, "You have been assigned complaint: "+payload.Title)
	return nil
}

// handleStatusChanged emits on exactly two (status, actor role) pairs. Every
// other combination is a silent update.
func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ComplaintStatusChangedPayload)
	if !ok {
		return nil
	}

	if payload.NewStatus == domain.ComplaintStatusInProgress && event.Actor.Role == domain.RoleStaff {
		message := fmt.Sprintf("%s has accepted your complaint: %s", event.Actor.Name, payload.Title)
		n.enqueue(ctx, event, payload.StudentID, message)
		return nil
	}

	if payload.NewStatus == domain.ComplaintStatusResolved && event.Actor.Role == domain.RoleStudent {
		if payload.AssigneeID == nil {
			n.logger.Info("no assigned staff to notify for resolved complaint",
				zap.String("complaint_id", event.ComplaintID))
			return nil
		}
		n.enqueue(ctx, event, *payload.AssigneeID, "Complaint resolved by student: "+payload.Title)
		return nil
	}

	return nil
}

// enqueue writes one outbox row. Failures are logged, never propagated.
func (n *NotificationService) enqueue(ctx context.Context, event events.Event, recipientID, message string) bool {
	notification := &domain.Notification{
		UserID:  recipientID,
		Message: message,
	}
	if err := n.notifications.Create(ctx, notification); err != nil {
		n.recordFailure("notification outbox", event, err)
		return false
	}
	n.logger.Debug("notification created",
		zap.String("notification_id", notification.ID),
		zap.String("recipient_id", recipientID),
		zap.String("complaint_id", event.ComplaintID))
	return true
}

func (n *NotificationService) recordFailure(dependency string, event events.Event, err error) {
	n.logger.Warn("notification delivery degraded",
		zap.String("event_type", string(event.Type)),
		zap.String("complaint_id", event.ComplaintID),
		zap.Error(apperrors.NewDependencyError(dependency, err)))
}

// ListUnread returns the recipient's pending notifications, newest first.
func (n *NotificationService) ListUnread(ctx context.Context, userID string) ([]domain.Notification, error) {
	notifications, err := n.notifications.ListUnreadByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return notifications, nil
}

// Acknowledge deletes the notification. An id may be acknowledged at most
// once, and only by its recipient; anything else is not-found.
func (n *NotificationService) Acknowledge(ctx context.Context, id, userID string) error {
	if err := n.notifications.DeleteByIDForUser(ctx, id, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("notification", map[string]any{"notification_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// ListAllForAdmin returns the bounded diagnostic feed, newest first, with
// recipient identity attached. Identity lookup failures leave the recipient
// nil rather than failing the feed.
func (n *NotificationService) ListAllForAdmin(ctx context.Context, limit int) ([]NotificationView, error) {
	notifications, err := n.notifications.ListAll(ctx, limit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	cache := map[string]*domain.User{}
	views := make([]NotificationView, 0, len(notifications))
	for _, notification := range notifications {
		recipient, ok := cache[notification.UserID]
		if !ok {
			recipient, err = n.users.GetByID(ctx, notification.UserID)
			if err != nil {
				recipient = nil
			}
			cache[notification.UserID] = recipient
		}
		views = append(views, NotificationView{Notification: notification, Recipient: recipient})
	}
	return views, nil
}
