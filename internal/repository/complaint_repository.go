package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hostel-complaints/internal/domain"
)

// ComplaintRepository encapsulates complaint persistence. Status and assignee
// updates are unconditional field writes; which transitions are legal is the
// lifecycle engine's concern, not the store's.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Complaint, error)
	ListByAssignee(ctx context.Context, staffID string) ([]domain.Complaint, error)
	ListAll(ctx context.Context) ([]domain.Complaint, error)
	UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus) (*domain.Complaint, error)
	UpdateAssignee(ctx context.Context, id, staffID string) (*domain.Complaint, error)
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

const complaintColumns = `id, student_id, assigned_to, title, description, category, status, created_at, updated_at`

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (student_id, assigned_to, title, description, category, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		complaint.StudentID,
		complaint.AssignedTo,
		complaint.Title,
		complaint.Description,
		complaint.Category,
		complaint.Status,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt)
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *complaintRepository) ListByStudent(ctx context.Context, studentID string) ([]domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE student_id=$1 ORDER BY created_at`
	return r.list(ctx, query, studentID)
}

func (r *complaintRepository) ListByAssignee(ctx context.Context, staffID string) ([]domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE assigned_to=$1 ORDER BY created_at`
	return r.list(ctx, query, staffID)
}

func (r *complaintRepository) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints ORDER BY created_at`
	return r.list(ctx, query)
}

func (r *complaintRepository) UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus) (*domain.Complaint, error) {
	query := `UPDATE complaints SET status=$1, updated_at=NOW() WHERE id=$2 RETURNING ` + complaintColumns
	return r.fetchSingle(ctx, query, status, id)
}

func (r *complaintRepository) UpdateAssignee(ctx context.Context, id, staffID string) (*domain.Complaint, error) {
	query := `UPDATE complaints SET assigned_to=$1, updated_at=NOW() WHERE id=$2 RETURNING ` + complaintColumns
	return r.fetchSingle(ctx, query, staffID, id)
}

func (r *complaintRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Complaint, error) {
	var complaint domain.Complaint
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&complaint.ID,
		&complaint.StudentID,
		&complaint.AssignedTo,
		&complaint.Title,
		&complaint.Description,
		&complaint.Category,
		&complaint.Status,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) list(ctx context.Context, query string, args ...any) ([]domain.Complaint, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func scanComplaints(rows pgx.Rows) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for rows.Next() {
		var complaint domain.Complaint
		if err := rows.Scan(
			&complaint.ID,
			&complaint.StudentID,
			&complaint.AssignedTo,
			&complaint.Title,
			&complaint.Description,
			&complaint.Category,
			&complaint.Status,
			&complaint.CreatedAt,
			&complaint.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, complaint)
	}
	return result, rows.Err()
}
