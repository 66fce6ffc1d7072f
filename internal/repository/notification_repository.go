package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hostel-complaints/internal/domain"
)

// NotificationRepository is the per-recipient outbox. Acknowledgment is
// destructive: DeleteByIDForUser removes the row, and a second call for the
// same id reports pgx.ErrNoRows.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListUnreadByUser(ctx context.Context, userID string) ([]domain.Notification, error)
	DeleteByIDForUser(ctx context.Context, id, userID string) error
	ListAll(ctx context.Context, limit int) ([]domain.Notification, error)
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository instantiates repository.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	const query = `
        INSERT INTO notifications (user_id, message)
        VALUES ($1, $2)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		notification.UserID,
		notification.Message,
	).Scan(&notification.ID, &notification.CreatedAt)
}

func (r *notificationRepository) ListUnreadByUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	const query = `
        SELECT id, user_id, message, created_at
        FROM notifications WHERE user_id=$1
        ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

// DeleteByIDForUser deletes a single notification owned by userID. The
// recipient match in the WHERE clause prevents acknowledging another user's
// notification; the single-row delete makes double-acknowledge report
// not-found rather than silently succeeding.
func (r *notificationRepository) DeleteByIDForUser(ctx context.Context, id, userID string) error {
	const query = `DELETE FROM notifications WHERE id=$1 AND user_id=$2`
	cmd, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *notificationRepository) ListAll(ctx context.Context, limit int) ([]domain.Notification, error) {
	const query = `
        SELECT id, user_id, message, created_at
        FROM notifications
        ORDER BY created_at DESC LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *notificationRepository) list(ctx context.Context, query string, args ...any) ([]domain.Notification, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Notification
	for rows.Next() {
		var notification domain.Notification
		if err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&notification.Message,
			&notification.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, notification)
	}
	return result, rows.Err()
}
