package user

import (
	"errors"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	s := NewService(NewInMemoryRepository(nil))

	created, err := s.Register(User{Email: "maria@example.cl", Password: "secreto123", FirstName: "María"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if created.Role != RoleCustomer {
		t.Fatalf("default role = %q, want %q", created.Role, RoleCustomer)
	}
	if created.Password == "secreto123" {
		t.Fatal("password stored in plain text")
	}

	if _, err := s.Authenticate("maria@example.cl", "secreto123"); err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if _, err := s.Authenticate("maria@example.cl", "otra"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Authenticate("nadie@example.cl", "secreto123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := NewService(NewInMemoryRepository(nil))

	if _, err := s.Register(User{Email: "maria@example.cl", Password: "secreto123", FirstName: "María"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := s.Register(User{Email: "maria@example.cl", Password: "otra", FirstName: "María"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestGetVendorRequiresRole(t *testing.T) {
	s := NewService(NewInMemoryRepository([]User{
		{ID: 1, Email: "cliente@example.cl", Role: RoleCustomer},
		{ID: 2, Email: "tienda@example.cl", Role: RoleVendor, StoreName: "Modas Antonia"},
	}))

	v, err := s.GetVendor(2)
	if err != nil {
		t.Fatalf("vendor lookup failed: %v", err)
	}
	if v.StoreName != "Modas Antonia" {
		t.Fatalf("store name = %q", v.StoreName)
	}

	if _, err := s.GetVendor(1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("customer as vendor: expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetVendor(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing user: expected ErrNotFound, got %v", err)
	}
}

func TestSetRoleAndCommission(t *testing.T) {
	s := NewService(NewInMemoryRepository([]User{
		{ID: 1, Email: "tienda@example.cl", Role: RoleCustomer},
	}))

	u, err := s.SetRole(1, RoleVendor)
	if err != nil {
		t.Fatalf("set role failed: %v", err)
	}
	if !u.IsVendor() {
		t.Fatalf("role = %q after promotion", u.Role)
	}

	u, err = s.SetCommissionRate(1, 12.5)
	if err != nil {
		t.Fatalf("set commission failed: %v", err)
	}
	if u.CommissionRate != 12.5 {
		t.Fatalf("commission = %v, want 12.5", u.CommissionRate)
	}
}

func TestSetCommissionRejectsNonVendor(t *testing.T) {
	s := NewService(NewInMemoryRepository([]User{
		{ID: 1, Email: "cliente@example.cl", Role: RoleCustomer},
	}))

	if _, err := s.SetCommissionRate(1, 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
