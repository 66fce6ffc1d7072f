package bootstrap

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/hostel-complaints/internal/auth"
	"github.com/spec-kit/hostel-complaints/internal/domain"
	"github.com/spec-kit/hostel-complaints/internal/repository"
)

type seedAccount struct {
	name     string
	email    string
	password string
	role     domain.Role
	trade    *domain.Trade
}

func tradePtr(t domain.Trade) *domain.Trade { return &t }

var seedAccounts = []seedAccount{
	{name: "Admin User", email: "admin@hostel.com", password: "admin123", role: domain.RoleAdmin},
	{name: "Electrician Staff", email: "electrician@hostel.com", password: "staff123", role: domain.RoleStaff, trade: tradePtr(domain.TradeElectrician)},
	{name: "Plumber Staff", email: "plumber@hostel.com", password: "staff123", role: domain.RoleStaff, trade: tradePtr(domain.TradePlumber)},
	{name: "Carpenter Staff", email: "carpenter@hostel.com", password: "staff123", role: domain.RoleStaff, trade: tradePtr(domain.TradeCarpenter)},
	{name: "Carpenter Staff 2", email: "carpenter2@hostel.com", password: "staff123", role: domain.RoleStaff, trade: tradePtr(domain.TradeCarpenter)},
}

// SeedUsers creates the demo admin and staff accounts when absent. Idempotent:
// accounts are keyed by email and never overwritten. The lifecycle core never
// assumes these exist.
func SeedUsers(ctx context.Context, users repository.UserRepository, bcryptCost int, logger *zap.Logger) error {
	created := 0
	for _, account := range seedAccounts {
		_, err := users.GetByEmail(ctx, account.email)
		if err == nil {
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		hash, err := auth.HashPassword(account.password, bcryptCost)
		if err != nil {
			return err
		}
		user := &domain.User{
			Name:         account.name,
			Email:        account.email,
			PasswordHash: hash,
			Role:         account.role,
			Trade:        account.trade,
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		created++
	}
	logger.Info("predefined users seeded", zap.Int("created", created))
	return nil
}
