package main

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"liok_hotels/internal/app"
	"liok_hotels/internal/shared"
	"liok_hotels/internal/storage/memory"
)

func TestSeedStaffMakesMemoryModeUsable(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repositories()
	auth := app.NewAuthService(repos.Users, bcrypt.MinCost)

	if err := seedStaff(ctx, auth, shared.Config{}); err != nil {
		t.Fatalf("seed without account: %v", err)
	}
	if _, err := auth.Authenticate(ctx, "admin", "s3cret"); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Fatalf("login before seeding: want ErrInvalidCredentials, got %v", err)
	}

	cfg := shared.Config{StaffUsername: "admin", StaffPassword: "s3cret"}
	if err := seedStaff(ctx, auth, cfg); err != nil {
		t.Fatalf("seed: %v", err)
	}
	u, err := auth.Authenticate(ctx, "admin", "s3cret")
	if err != nil || !u.IsStaff {
		t.Fatalf("seeded staff cannot log in: %+v, %v", u, err)
	}
}
