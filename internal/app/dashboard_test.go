package app_test

import (
	"context"
	"testing"
	"time"

	"liok_hotels/internal/app"
	"liok_hotels/internal/domain"
	"liok_hotels/internal/storage/memory"
)

func TestDashboard_Build(t *testing.T) {
	repos := memory.New().Repositories()
	ctx := context.Background()
	p := domain.Property{Name: "Liok Resort", Slug: "liok-resort"}
	if err := repos.Properties.Create(ctx, &p); err != nil {
		t.Fatalf("seed: %v", err)
	}
	at := func(m time.Month, d int) time.Time { return time.Date(2025, m, d, 10, 0, 0, 0, time.UTC) }
	seed := []struct {
		at     time.Time
		status domain.BookingStatus
	}{
		{at(time.January, 5), domain.StatusPending},
		{at(time.March, 1), domain.StatusConfirmed},
		{at(time.March, 20), domain.StatusPending},
		{time.Date(2024, time.November, 2, 0, 0, 0, 0, time.UTC), domain.StatusCancelled},
	}
	for _, s := range seed {
		b := domain.BookingInquiry{PropertyID: p.ID, Status: s.status, CreatedAt: s.at}
		if err := repos.Bookings.Create(ctx, &b); err != nil {
			t.Fatalf("seed booking: %v", err)
		}
	}
	for i := 0; i < 7; i++ {
		if err := repos.Contacts.Create(ctx, &domain.ContactMessage{FirstName: "C", CreatedAt: at(time.April, i+1)}); err != nil {
			t.Fatalf("seed contact: %v", err)
		}
	}

	svc := app.NewDashboardService(repos).WithClock(func() time.Time { return at(time.June, 1) })
	d, err := svc.Build(ctx)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := app.DashboardStats{TotalBookings: 4, PendingInquiries: 2, TotalProperties: 1, ContactsCount: 7}
	if d.Stats != want {
		t.Fatalf("stats = %+v, want %+v", d.Stats, want)
	}
	if len(d.BookingLabels) != 2 || d.BookingLabels[0] != "Jan" || d.BookingLabels[1] != "Mar" || d.BookingCounts[1] != 2 {
		t.Fatalf("monthly = %v %v", d.BookingLabels, d.BookingCounts)
	}
	if len(d.StatusLabels) != 3 || d.StatusLabels[0] != "Cancelled" || d.StatusLabels[2] != "Pending" || d.StatusCounts[2] != 2 {
		t.Fatalf("status = %v %v", d.StatusLabels, d.StatusCounts)
	}
	if len(d.RecentBookings) != 4 || d.RecentBookings[0].PropertyName != "Liok Resort" {
		t.Fatalf("recent bookings = %+v", d.RecentBookings)
	}
	if len(d.RecentContacts) != 5 || d.RecentContacts[0].CreatedAt.Day() != 7 {
		t.Fatalf("recent contacts = %+v", d.RecentContacts)
	}
}

func TestDashboard_EmptyStore(t *testing.T) {
	d, err := app.NewDashboardService(memory.New().Repositories()).Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if d.BookingLabels == nil || len(d.BookingLabels) != 0 || d.Stats.TotalBookings != 0 {
		t.Fatalf("unexpected dashboard: %+v", d)
	}
}
