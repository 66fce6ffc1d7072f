package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/hostel-complaints/internal/domain"
	"github.com/spec-kit/hostel-complaints/internal/events"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  []*domain.User
	nextID int
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.nextID++
	user.ID = fmt.Sprintf("u%d", r.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users = append(r.users, &copied)
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) ListByRole(_ context.Context, role domain.Role, trade *domain.Trade) ([]domain.User, error) {
	var result []domain.User
	for _, user := range r.users {
		if user.Role != role {
			continue
		}
		if trade != nil && (user.Trade == nil || *user.Trade != *trade) {
			continue
		}
		result = append(result, *user)
	}
	return result, nil
}

type stubComplaintRepo struct {
	complaints []*domain.Complaint
	nextID     int
}

func (r *stubComplaintRepo) Create(_ context.Context, complaint *domain.Complaint) error {
	r.nextID++
	complaint.ID = fmt.Sprintf("c%d", r.nextID)
	complaint.CreatedAt = time.Now()
	complaint.UpdatedAt = complaint.CreatedAt
	copied := *complaint
	r.complaints = append(r.complaints, &copied)
	return nil
}

func (r *stubComplaintRepo) find(id string) *domain.Complaint {
	for _, complaint := range r.complaints {
		if complaint.ID == id {
			return complaint
		}
	}
	return nil
}

func (r *stubComplaintRepo) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	if complaint := r.find(id); complaint != nil {
		copied := *complaint
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubComplaintRepo) ListByStudent(_ context.Context, studentID string) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for _, complaint := range r.complaints {
		if complaint.StudentID == studentID {
			result = append(result, *complaint)
		}
	}
	return result, nil
}

func (r *stubComplaintRepo) ListByAssignee(_ context.Context, staffID string) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for _, complaint := range r.complaints {
		if complaint.AssignedTo != nil && *complaint.AssignedTo == staffID {
			result = append(result, *complaint)
		}
	}
	return result, nil
}

func (r *stubComplaintRepo) ListAll(_ context.Context) ([]domain.Complaint, error) {
	result := make([]domain.Complaint, 0, len(r.complaints))
	for _, complaint := range r.complaints {
		result = append(result, *complaint)
	}
	return result, nil
}

func (r *stubComplaintRepo) UpdateStatus(_ context.Context, id string, status domain.ComplaintStatus) (*domain.Complaint, error) {
	complaint := r.find(id)
	if complaint == nil {
		return nil, pgx.ErrNoRows
	}
	complaint.Status = status
	complaint.UpdatedAt = time.Now()
	copied := *complaint
	return &copied, nil
}

func (r *stubComplaintRepo) UpdateAssignee(_ context.Context, id, staffID string) (*domain.Complaint, error) {
	complaint := r.find(id)
	if complaint == nil {
		return nil, pgx.ErrNoRows
	}
	complaint.AssignedTo = &staffID
	complaint.UpdatedAt = time.Now()
	copied := *complaint
	return &copied, nil
}

type stubNotificationRepo struct {
	notifications []*domain.Notification
	nextID        int
	createErr     error // if set, Create returns this error
}

func (r *stubNotificationRepo) Create(_ context.Context, notification *domain.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	notification.ID = fmt.Sprintf("n%d", r.nextID)
	// strictly increasing timestamps keep newest-first ordering deterministic
	notification.CreatedAt = time.Unix(int64(r.nextID), 0)
	copied := *notification
	r.notifications = append(r.notifications, &copied)
	return nil
}

func (r *stubNotificationRepo) ListUnreadByUser(_ context.Context, userID string) ([]domain.Notification, error) {
	var result []domain.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].UserID == userID {
			result = append(result, *r.notifications[i])
		}
	}
	return result, nil
}

func (r *stubNotificationRepo) DeleteByIDForUser(_ context.Context, id, userID string) error {
	for i, notification := range r.notifications {
		if notification.ID == id && notification.UserID == userID {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *stubNotificationRepo) ListAll(_ context.Context, limit int) ([]domain.Notification, error) {
	var result []domain.Notification
	for i := len(r.notifications) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, *r.notifications[i])
	}
	return result, nil
}

func (r *stubNotificationRepo) forUser(userID string) []domain.Notification {
	var result []domain.Notification
	for _, notification := range r.notifications {
		if notification.UserID == userID {
			result = append(result, *notification)
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Wiring helper: lifecycle engine with the outbox fan-out subscribed, exactly
// as in process wiring.
// ---------------------------------------------------------------------------

type testEnv struct {
	users         *stubUserRepo
	complaints    *stubComplaintRepo
	notifications *stubNotificationRepo
	lifecycle     *LifecycleService
	outbox        *NotificationService
}

func newTestEnv() *testEnv {
	users := &stubUserRepo{}
	complaints := &stubComplaintRepo{}
	notifications := &stubNotificationRepo{}
	dispatcher := events.NewInMemoryDispatcher()

	outbox := NewNotificationService(notifications, users, dispatcher, zap.NewNop())
	outbox.RegisterHandlers()

	lifecycle := NewLifecycleService(LifecycleDependencies{
		ComplaintRepo: complaints,
		UserRepo:      users,
		Dispatcher:    dispatcher,
	})

	return &testEnv{
		users:         users,
		complaints:    complaints,
		notifications: notifications,
		lifecycle:     lifecycle,
		outbox:        outbox,
	}
}

func (e *testEnv) addUser(name string, role domain.Role, trade *domain.Trade) *domain.User {
	user := &domain.User{Name: name, Email: name + "@hostel.test", Role: role, Trade: trade}
	_ = e.users.Create(context.Background(), user)
	return user
}
