package app_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"liok_hotels/internal/app"
	"liok_hotels/internal/domain"
	"liok_hotels/internal/storage/memory"
)

func TestAuthenticate(t *testing.T) {
	repos := memory.New().Repositories()
	auth := app.NewAuthService(repos.Users, bcrypt.MinCost)
	ctx := context.Background()

	staff, created, err := auth.CreateStaff(ctx, "manager", "s3cret")
	if err != nil || !created {
		t.Fatalf("create staff: created=%v err=%v", created, err)
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err := repos.Users.Create(ctx, &domain.User{Username: "guest", PasswordHash: string(hash), IsActive: true}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := auth.Authenticate(ctx, "manager", ""); !errors.Is(err, app.ErrMissingCredentials) {
		t.Fatalf("missing password: %v", err)
	}
	for _, c := range []struct{ user, pass string }{
		{"manager", "wrong"}, {"nobody", "s3cret"}, {"guest", "pw"},
	} {
		if _, err := auth.Authenticate(ctx, c.user, c.pass); !errors.Is(err, app.ErrInvalidCredentials) {
			t.Fatalf("%s/%s: want ErrInvalidCredentials, got %v", c.user, c.pass, err)
		}
	}
	u, err := auth.Authenticate(ctx, "manager", "s3cret")
	if err != nil || u.ID != staff.ID {
		t.Fatalf("authenticate: %+v err %v", u, err)
	}
}

func TestStaffUser_RechecksStore(t *testing.T) {
	repos := memory.New().Repositories()
	auth := app.NewAuthService(repos.Users, bcrypt.MinCost)
	ctx := context.Background()
	u, _, _ := auth.CreateStaff(ctx, "manager", "s3cret")

	if _, err := auth.StaffUser(ctx, u.ID); err != nil {
		t.Fatalf("staff user: %v", err)
	}
	u.IsActive = false
	if err := repos.Users.Update(ctx, &u); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := auth.StaffUser(ctx, u.ID); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Fatalf("inactive user admitted: %v", err)
	}
	if _, err := auth.StaffUser(ctx, 0); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Fatalf("anonymous admitted: %v", err)
	}
}

func TestCreateStaff_PromotesExisting(t *testing.T) {
	repos := memory.New().Repositories()
	auth := app.NewAuthService(repos.Users, bcrypt.MinCost)
	ctx := context.Background()
	if err := repos.Users.Create(ctx, &domain.User{Username: "guest", PasswordHash: "x"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	u, created, err := auth.CreateStaff(ctx, "guest", "new-pass")
	if err != nil || created || !u.IsStaff || !u.IsActive {
		t.Fatalf("promote: %+v created=%v err=%v", u, created, err)
	}
	if _, err := auth.Authenticate(ctx, "guest", "new-pass"); err != nil {
		t.Fatalf("promoted user cannot log in: %v", err)
	}
	_, _, err = auth.CreateStaff(ctx, "", "")
	fieldErr(t, err, "username")
}
