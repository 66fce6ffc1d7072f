package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/hostel-complaints/internal/domain"
	apperrors "github.com/spec-kit/hostel-complaints/pkg/util"
)

func newDirectory(users *stubUserRepo) *DirectoryService {
	// nil cache: the service must serve straight from the repository
	return NewDirectoryService(users, nil, 0, zap.NewNop())
}

func TestListStaffStripsPasswordHash(t *testing.T) {
	users := &stubUserRepo{}
	electrician := &domain.User{Name: "Elena", Email: "elena@hostel.test", Role: domain.RoleStaff, Trade: tradeOf(domain.TradeElectrician), PasswordHash: "hashed"}
	_ = users.Create(context.Background(), electrician)
	student := &domain.User{Name: "Asha", Email: "asha@hostel.test", Role: domain.RoleStudent, PasswordHash: "hashed"}
	_ = users.Create(context.Background(), student)

	staff, err := newDirectory(users).ListStaff(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListStaff: %v", err)
	}
	if len(staff) != 1 {
		t.Fatalf("staff = %d, want 1 (students excluded)", len(staff))
	}
	if staff[0].PasswordHash != "" {
		t.Error("password hash leaked in directory listing")
	}
}

func TestListStaffFiltersByTrade(t *testing.T) {
	users := &stubUserRepo{}
	for _, entry := range []struct {
		name  string
		trade domain.Trade
	}{
		{"Elena", domain.TradeElectrician},
		{"Priya", domain.TradePlumber},
		{"Ravi", domain.TradeCarpenter},
		{"Raj", domain.TradeCarpenter},
	} {
		_ = users.Create(context.Background(), &domain.User{
			Name: entry.name, Email: entry.name + "@hostel.test",
			Role: domain.RoleStaff, Trade: tradeOf(entry.trade),
		})
	}

	directory := newDirectory(users)
	carpenters, err := directory.ListStaff(context.Background(), tradeOf(domain.TradeCarpenter))
	if err != nil {
		t.Fatalf("ListStaff: %v", err)
	}
	if len(carpenters) != 2 {
		t.Fatalf("carpenters = %d, want 2", len(carpenters))
	}
	all, err := directory.ListStaff(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListStaff all: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("all staff = %d, want 4", len(all))
	}
}

func TestGetUserNotFound(t *testing.T) {
	directory := newDirectory(&stubUserRepo{})
	if _, err := directory.GetUser(context.Background(), "missing"); !apperrors.IsCode(err, "NOT_FOUND") {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}
