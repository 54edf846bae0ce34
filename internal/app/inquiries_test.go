package app_test

import (
	"context"
	"errors"
	"testing"

	"liok_hotels/internal/app"
	"liok_hotels/internal/domain"
	"liok_hotels/internal/storage/memory"
)

type outcomes []string

func (o *outcomes) observe(kind, outcome string) { *o = append(*o, kind+":"+outcome) }

func TestSubmitContact(t *testing.T) {
	repos := memory.New().Repositories()
	var seen outcomes
	svc := app.NewInquiryService(repos, seen.observe)
	ctx := context.Background()

	_, err := svc.SubmitContact(ctx, app.ContactInput{FirstName: "Asha", LastName: "Rao", Message: "hi"})
	fieldErr(t, err, "phone")
	_, err = svc.SubmitContact(ctx, app.ContactInput{FirstName: "Asha", LastName: "Rao", Phone: "1", Email: "not-an-email"})
	if msg := fieldErr(t, err, "email"); msg != "Enter a valid email address." {
		t.Fatalf("email message = %q", msg)
	}
	if n, _ := repos.Contacts.Count(ctx); n != 0 {
		t.Fatalf("invalid submissions stored: %d", n)
	}

	m, err := svc.SubmitContact(ctx, app.ContactInput{FirstName: " Asha ", LastName: "Rao", Phone: "+911234567890"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if m.FirstName != "Asha" || m.Email != "" {
		t.Fatalf("unexpected message: %+v", m)
	}
	want := []string{"contact:invalid", "contact:invalid", "contact:ok"}
	if len(seen) != len(want) || seen[2] != want[2] {
		t.Fatalf("outcomes = %v", seen)
	}
}

func TestSubmitBooking(t *testing.T) {
	repos := memory.New().Repositories()
	svc := app.NewInquiryService(repos, nil)
	ctx := context.Background()
	p := domain.Property{Name: "Liok Resort", Slug: "liok-resort"}
	if err := repos.Properties.Create(ctx, &p); err != nil {
		t.Fatalf("seed: %v", err)
	}

	in := app.BookingInput{
		FirstName: "Asha", LastName: "Rao", Phone: "+911234567890",
		Property: itoa(p.ID), CheckIn: "2025-06-01", CheckOut: "2025-06-05",
		RoomCategory: "Deluxe Suite",
	}
	b, err := svc.SubmitBooking(ctx, in)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if b.Status != domain.StatusPending || b.Guests != 2 || b.CheckIn.String() != "2025-06-01" || b.PropertyName != "Liok Resort" {
		t.Fatalf("unexpected booking: %+v", b)
	}

	bad := in
	bad.CheckOut = "05/06/2025"
	bad.Property = "999"
	_, err = svc.SubmitBooking(ctx, bad)
	if msg := fieldErr(t, err, "check_out"); msg != "Enter a valid date." {
		t.Fatalf("date message = %q", msg)
	}
	fieldErr(t, err, "property")
	if n, _ := repos.Bookings.Count(ctx); n != 1 {
		t.Fatalf("bookings = %d, want 1", n)
	}
}

func TestSetBookingStatus(t *testing.T) {
	repos := memory.New().Repositories()
	svc := app.NewInquiryService(repos, nil)
	ctx := context.Background()
	p := domain.Property{Name: "Liok Resort", Slug: "liok-resort"}
	_ = repos.Properties.Create(ctx, &p)
	b := domain.BookingInquiry{PropertyID: p.ID, Status: domain.StatusPending}
	_ = repos.Bookings.Create(ctx, &b)

	_, err := svc.SetBookingStatus(ctx, b.ID, "archived")
	fieldErr(t, err, "status")
	got, err := svc.SetBookingStatus(ctx, b.ID, "cancelled")
	if err != nil || got.Status != domain.StatusCancelled {
		t.Fatalf("status: %+v err %v", got, err)
	}
	if _, err := svc.SetBookingStatus(ctx, 999, "confirmed"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

type failingContacts struct{ domain.ContactRepository }

func (failingContacts) Create(context.Context, *domain.ContactMessage) error {
	return errors.New("disk full")
}

func TestSubmitContact_StorageFailureIsGeneric(t *testing.T) {
	repos := memory.New().Repositories()
	repos.Contacts = failingContacts{repos.Contacts}
	var seen outcomes
	svc := app.NewInquiryService(repos, seen.observe)

	_, err := svc.SubmitContact(context.Background(), app.ContactInput{FirstName: "A", LastName: "B", Phone: "1"})
	if !errors.Is(err, app.ErrSubmissionFailed) {
		t.Fatalf("want ErrSubmissionFailed, got %v", err)
	}
	if len(seen) != 1 || seen[0] != "contact:failed" {
		t.Fatalf("outcomes = %v", seen)
	}
}
