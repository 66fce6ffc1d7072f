package worker

import (
	"github.com/spec-kit/hostel-complaints/internal/service"
)

// StartNotificationWorker registers the outbox fan-out handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
