package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/hostel-complaints/internal/domain"
	"github.com/spec-kit/hostel-complaints/internal/persistence"
	"github.com/spec-kit/hostel-complaints/internal/repository"
	apperrors "github.com/spec-kit/hostel-complaints/pkg/util"
)

const staffCacheKeyPrefix = "directory:staff:"

// DirectoryService serves identity lookups for assignment candidates and
// notification fan-out. Staff listings are cached in Redis for a short TTL;
// a degraded cache falls through to Postgres.
type DirectoryService struct {
	users  repository.UserRepository
	cache  *persistence.Redis
	ttl    time.Duration
	logger *zap.Logger
}

// NewDirectoryService constructs the service. cache may be nil.
func NewDirectoryService(users repository.UserRepository, cache *persistence.Redis, ttl time.Duration, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{users: users, cache: cache, ttl: ttl, logger: logger}
}

// ListStaff returns staff identities, optionally filtered by trade, with
// password hashes stripped.
func (d *DirectoryService) ListStaff(ctx context.Context, trade *domain.Trade) ([]domain.User, error) {
	key := staffCacheKeyPrefix + "all"
	if trade != nil {
		key = staffCacheKeyPrefix + string(*trade)
	}

	if cached := d.readCache(ctx, key); cached != nil {
		return cached, nil
	}

	staff, err := d.users.ListByRole(ctx, domain.RoleStaff, trade)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	for i := range staff {
		staff[i].PasswordHash = ""
	}

	d.writeCache(ctx, key, staff)
	return staff, nil
}

// GetUser resolves a user by id.
func (d *DirectoryService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := d.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

func (d *DirectoryService) readCache(ctx context.Context, key string) []domain.User {
	if d.cache == nil || d.cache.Client == nil || d.ttl <= 0 {
		return nil
	}
	raw, err := d.cache.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var staff []domain.User
	if err := json.Unmarshal(raw, &staff); err != nil {
		d.logger.Debug("staff cache entry unreadable", zap.String("key", key), zap.Error(err))
		return nil
	}
	return staff
}

func (d *DirectoryService) writeCache(ctx context.Context, key string, staff []domain.User) {
	if d.cache == nil || d.cache.Client == nil || d.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(staff)
	if err != nil {
		return
	}
	if err := d.cache.Client.Set(ctx, key, raw, d.ttl).Err(); err != nil {
		d.logger.Debug("staff cache write failed", zap.String("key", key), zap.Error(err))
	}
}
