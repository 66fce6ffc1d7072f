package service

import (
	"context"
	"testing"

	"github.com/spec-kit/hostel-complaints/internal/config"
	"github.com/spec-kit/hostel-complaints/internal/domain"
	apperrors "github.com/spec-kit/hostel-complaints/pkg/util"
)

func newAuthService(users *stubUserRepo) *AuthService {
	// bcrypt MinCost keeps the hashing tests fast
	return NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
	}, users)
}

func validSignup() SignupInput {
	return SignupInput{
		Name:       "Asha Rao",
		Email:      "asha.rao@gmail.com",
		Password:   "passw0rd!",
		RollNo:     "23CSB0B26",
		HostelName: "Godavari",
		RoomNumber: "112",
	}
}

func TestRegisterStudent(t *testing.T) {
	users := &stubUserRepo{}
	svc := newAuthService(users)

	user, err := svc.RegisterStudent(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("RegisterStudent: %v", err)
	}
	if user.Role != domain.RoleStudent {
		t.Errorf("role = %q, want student", user.Role)
	}
	if user.ID == "" {
		t.Error("user id not assigned")
	}
	if user.PasswordHash == "passw0rd!" || user.PasswordHash == "" {
		t.Error("password stored without hashing")
	}
	if user.RollNo != "23CSB0B26" || user.HostelName != "Godavari" || user.RoomNumber != "112" {
		t.Errorf("profile fields not stored: %+v", user)
	}
}

func TestRegisterStudentAcceptsInstituteEmail(t *testing.T) {
	svc := newAuthService(&stubUserRepo{})
	input := validSignup()
	input.Email = "ar23csb0b26@student.nitw.ac.in"

	if _, err := svc.RegisterStudent(context.Background(), input); err != nil {
		t.Fatalf("institute email rejected: %v", err)
	}
}

func TestRegisterStudentValidation(t *testing.T) {
	svc := newAuthService(&stubUserRepo{})

	mutate := func(f func(*SignupInput)) SignupInput {
		input := validSignup()
		f(&input)
		return input
	}

	cases := []struct {
		name  string
		input SignupInput
	}{
		{"missing name", mutate(func(i *SignupInput) { i.Name = " " })},
		{"missing email", mutate(func(i *SignupInput) { i.Email = "" })},
		{"missing password", mutate(func(i *SignupInput) { i.Password = "" })},
		{"non-gmail domain", mutate(func(i *SignupInput) { i.Email = "asha@yahoo.com" })},
		{"bad institute local part", mutate(func(i *SignupInput) { i.Email = "asha.rao@student.nitw.ac.in" })},
		{"bad roll number", mutate(func(i *SignupInput) { i.RollNo = "2023CS01" })},
		{"short password", mutate(func(i *SignupInput) { i.Password = "ab1!" })},
		{"no special character", mutate(func(i *SignupInput) { i.Password = "password1" })},
		{"no digit", mutate(func(i *SignupInput) { i.Password = "password!" })},
		{"disallowed character", mutate(func(i *SignupInput) { i.Password = "passw0rd#" })},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RegisterStudent(context.Background(), tc.input)
			if !apperrors.IsCode(err, "VALIDATION_FAILED") {
				t.Errorf("err = %v, want VALIDATION_FAILED", err)
			}
		})
	}
}

func TestRegisterStudentOptionalRollNo(t *testing.T) {
	svc := newAuthService(&stubUserRepo{})
	input := validSignup()
	input.RollNo = ""

	if _, err := svc.RegisterStudent(context.Background(), input); err != nil {
		t.Fatalf("empty roll number should be accepted: %v", err)
	}
}

func TestRegisterStudentDuplicateEmail(t *testing.T) {
	svc := newAuthService(&stubUserRepo{})

	if _, err := svc.RegisterStudent(context.Background(), validSignup()); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	_, err := svc.RegisterStudent(context.Background(), validSignup())
	if !apperrors.IsCode(err, "CONFLICT") {
		t.Fatalf("err = %v, want CONFLICT", err)
	}
}

func TestLoginIssuesParsableToken(t *testing.T) {
	svc := newAuthService(&stubUserRepo{})
	registered, err := svc.RegisterStudent(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("RegisterStudent: %v", err)
	}

	user, token, expiresAt, err := svc.Login(context.Background(), "asha.rao@gmail.com", "passw0rd!")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("logged-in user = %q, want %q", user.ID, registered.ID)
	}
	if expiresAt.IsZero() {
		t.Error("expiry not set")
	}

	claims, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != registered.ID || claims.Role != domain.RoleStudent {
		t.Errorf("claims = %+v, want uid %q role student", claims, registered.ID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(&stubUserRepo{})
	if _, err := svc.RegisterStudent(context.Background(), validSignup()); err != nil {
		t.Fatalf("RegisterStudent: %v", err)
	}

	// unknown email and wrong password must look identical to the caller
	if _, _, _, err := svc.Login(context.Background(), "nobody@gmail.com", "passw0rd!"); !apperrors.IsCode(err, "UNAUTHORIZED") {
		t.Errorf("unknown email: err = %v, want UNAUTHORIZED", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "asha.rao@gmail.com", "wrong-pass1!"); !apperrors.IsCode(err, "UNAUTHORIZED") {
		t.Errorf("wrong password: err = %v, want UNAUTHORIZED", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "", ""); !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Errorf("empty input: err = %v, want VALIDATION_FAILED", err)
	}
}
