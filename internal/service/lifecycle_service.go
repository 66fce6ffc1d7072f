package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hostel-complaints/internal/auth"
	"github.com/spec-kit/hostel-complaints/internal/domain"
	"github.com/spec-kit/hostel-complaints/internal/events"
	"github.com/spec-kit/hostel-complaints/internal/repository"
	apperrors "github.com/spec-kit/hostel-complaints/pkg/util"
)

// Lifecycle operations. Each entry in operationRoles is the allow-list checked
// before the operation runs; routes carry the same gate as middleware.
const (
	opSubmit       = "submit"
	opAssign       = "assign"
	opUpdateStatus = "update_status"
	opListMine     = "list_mine"
	opListAssigned = "list_assigned"
	opListAll      = "list_all"
)

var operationRoles = map[string][]domain.Role{
	opSubmit:       {domain.RoleStudent},
	opAssign:       {domain.RoleAdmin},
	opUpdateStatus: {domain.RoleStudent, domain.RoleStaff, domain.RoleAdmin},
	opListMine:     {domain.RoleStudent},
	opListAssigned: {domain.RoleStaff},
	opListAll:      {domain.RoleAdmin},
}

// LifecycleService orchestrates complaint transitions against the store and
// publishes the events the notification outbox fans out on. Store mutation and
// notification emission are intentionally not transactional together: once the
// mutation commits the operation succeeds even if fan-out degrades.
type LifecycleService struct {
	complaints repository.ComplaintRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// LifecycleDependencies bundles collaborator requirements.
type LifecycleDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	UserRepo      repository.UserRepository
	Dispatcher    events.Dispatcher
}

// SubmitInput describes complaint creation payload.
type SubmitInput struct {
	Title       string
	Description string
	Category    domain.ComplaintCategory
}

// ComplaintView pairs a complaint with the identities a listing attaches.
type ComplaintView struct {
	Complaint domain.Complaint
	Author    *domain.User
	Assignee  *domain.User
}

// NewLifecycleService constructs the service.
func NewLifecycleService(deps LifecycleDependencies) *LifecycleService {
	return &LifecycleService{
		complaints: deps.ComplaintRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Submit files a new complaint for a student and notifies every admin.
func (s *LifecycleService) Submit(ctx context.Context, actor *domain.User, input SubmitInput) (*domain.Complaint, error) {
	if err := authorize(actor, opSubmit); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}
	category := input.Category
	if category == "" {
		category = domain.CategoryGeneral
	}
	if !domain.ValidCategory(category) {
		return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": category})
	}

	complaint := &domain.Complaint{
		StudentID:   actor.ID,
		Title:       title,
		Description: description,
		Category:    category,
		Status:      domain.ComplaintStatusPending,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintSubmitted,
		ComplaintID: complaint.ID,
		Actor:       eventActor(actor),
		Payload: events.ComplaintSubmittedPayload{
			Title:    complaint.Title,
			Category: complaint.Category,
		},
	})
	return complaint, nil
}

// Assign sets the complaint assignee to the given staff member and notifies
// them. The assignee must resolve to a staff user; trade fit is advisory and
// not enforced here.
func (s *LifecycleService) Assign(ctx context.Context, actor *domain.User, complaintID, staffID string) (*domain.Complaint, error) {
	if err := authorize(actor, opAssign); err != nil {
		return nil, err
	}

	staff, err := s.users.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff", map[string]any{"staff_id": staffID})
		}
		return nil, apperrors.MapError(err)
	}
	if staff.Role != domain.RoleStaff {
		return nil, apperrors.NewNotFound("staff", map[string]any{"staff_id": staffID})
	}

	complaint, err := s.complaints.UpdateAssignee(ctx, complaintID, staff.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"complaint_id": complaintID})
		}
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintAssigned,
		ComplaintID: complaint.ID,
		Actor:       eventActor(actor),
		Payload: events.ComplaintAssignedPayload{
			AssigneeID: staff.ID,
			Title:      complaint.Title,
		},
	})
	return complaint, nil
}

// UpdateStatus performs the generic status write. Any of the three roles may
// set any defined status; there is no check that a staff caller is the
// assignee or a student caller the author. Notification fan-out is keyed on
// the exact (status, actor role) pair downstream, so every other combination
// is a silent update.
func (s *LifecycleService) UpdateStatus(ctx context.Context, actor *domain.User, complaintID string, status domain.ComplaintStatus) (*domain.Complaint, error) {
	if err := authorize(actor, opUpdateStatus); err != nil {
		return nil, err
	}
	if !domain.ValidStatus(status) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": status})
	}

	current, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"complaint_id": complaintID})
		}
		return nil, apperrors.MapError(err)
	}

	complaint, err := s.complaints.UpdateStatus(ctx, complaintID, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"complaint_id": complaintID})
		}
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: complaint.ID,
		Actor:       eventActor(actor),
		Payload: events.ComplaintStatusChangedPayload{
			OldStatus:  current.Status,
			NewStatus:  complaint.Status,
			Title:      complaint.Title,
			StudentID:  complaint.StudentID,
			AssigneeID: complaint.AssignedTo,
		},
	})
	return complaint, nil
}

// ListForStudent returns the actor's own complaints in display order.
func (s *LifecycleService) ListForStudent(ctx context.Context, actor *domain.User) ([]domain.Complaint, error) {
	if err := authorize(actor, opListMine); err != nil {
		return nil, err
	}
	complaints, err := s.complaints.ListByStudent(ctx, actor.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	domain.SortForDisplay(complaints)
	return complaints, nil
}

// ListForStaff returns complaints assigned to the actor, display-sorted, with
// author identity attached for display.
func (s *LifecycleService) ListForStaff(ctx context.Context, actor *domain.User) ([]ComplaintView, error) {
	if err := authorize(actor, opListAssigned); err != nil {
		return nil, err
	}
	complaints, err := s.complaints.ListByAssignee(ctx, actor.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	domain.SortForDisplay(complaints)
	return s.attachParties(ctx, complaints, false), nil
}

// ListAll returns every complaint for the admin view, display-sorted, with
// author and assignee identities attached.
func (s *LifecycleService) ListAll(ctx context.Context, actor *domain.User) ([]ComplaintView, error) {
	if err := authorize(actor, opListAll); err != nil {
		return nil, err
	}
	complaints, err := s.complaints.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	domain.SortForDisplay(complaints)
	return s.attachParties(ctx, complaints, true), nil
}

// attachParties resolves referenced users once per id. Lookup failures leave
// the identity nil rather than failing the listing.
func (s *LifecycleService) attachParties(ctx context.Context, complaints []domain.Complaint, withAssignee bool) []ComplaintView {
	cache := map[string]*domain.User{}
	lookup := func(id string) *domain.User {
		if user, ok := cache[id]; ok {
			return user
		}
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			user = nil
		}
		cache[id] = user
		return user
	}

	views := make([]ComplaintView, 0, len(complaints))
	for _, complaint := range complaints {
		view := ComplaintView{Complaint: complaint, Author: lookup(complaint.StudentID)}
		if withAssignee && complaint.AssignedTo != nil {
			view.Assignee = lookup(*complaint.AssignedTo)
		}
		views = append(views, view)
	}
	return views
}

func authorize(actor *domain.User, operation string) error {
	if actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if !auth.RoleAllowed(actor.Role, operationRoles[operation]) {
		return apperrors.NewForbidden("role " + string(actor.Role) + " may not " + operation)
	}
	return nil
}

func eventActor(actor *domain.User) events.Actor {
	return events.Actor{ID: actor.ID, Name: actor.Name, Role: actor.Role}
}

func (s *LifecycleService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
