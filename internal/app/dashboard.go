package app

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"liok_hotels/internal/domain"
)

const recentOnDashboard = 5

type DashboardStats struct {
	TotalBookings    int64 `json:"total_bookings"`
	PendingInquiries int64 `json:"pending_inquiries"`
	TotalProperties  int64 `json:"total_properties"`
	ContactsCount    int64 `json:"contacts_count"`
}

// Dashboard is recomputed on every request. The label/count pairs feed the
// charts directly.
type Dashboard struct {
	Stats          DashboardStats          `json:"stats"`
	BookingLabels  []string                `json:"booking_labels"`
	BookingCounts  []int64                 `json:"booking_counts"`
	StatusLabels   []string                `json:"status_labels"`
	StatusCounts   []int64                 `json:"status_counts"`
	RecentBookings []domain.BookingInquiry `json:"recent_bookings"`
	RecentContacts []domain.ContactMessage `json:"recent_contacts"`
}

type DashboardService struct {
	bookings   domain.BookingRepository
	contacts   domain.ContactRepository
	properties domain.PropertyRepository
	now        func() time.Time
}

func NewDashboardService(r domain.Repositories) *DashboardService {
	return &DashboardService{bookings: r.Bookings, contacts: r.Contacts, properties: r.Properties, now: utcNow}
}

// WithClock replaces the clock that decides the chart's calendar year.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

func (s *DashboardService) Build(ctx context.Context) (Dashboard, error) {
	var (
		d       Dashboard
		monthly []domain.MonthCount
		status  []domain.StatusCount
	)
	year := s.now().Year()
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	g, ctx := errgroup.WithContext(ctx)
	count := func(dst *int64, f func(context.Context) (int64, error)) {
		g.Go(func() (err error) {
			*dst, err = f(ctx)
			return err
		})
	}
	count(&d.Stats.TotalBookings, s.bookings.Count)
	count(&d.Stats.TotalProperties, s.properties.Count)
	count(&d.Stats.ContactsCount, s.contacts.Count)
	count(&d.Stats.PendingInquiries, func(ctx context.Context) (int64, error) {
		return s.bookings.CountByStatus(ctx, domain.StatusPending)
	})
	g.Go(func() (err error) {
		monthly, err = s.bookings.MonthlyCounts(ctx, from, to)
		return err
	})
	g.Go(func() (err error) {
		status, err = s.bookings.StatusCounts(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.RecentBookings, err = s.bookings.Recent(ctx, recentOnDashboard)
		return err
	})
	g.Go(func() (err error) {
		d.RecentContacts, err = s.contacts.Recent(ctx, recentOnDashboard)
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	d.BookingLabels = make([]string, 0, len(monthly))
	d.BookingCounts = make([]int64, 0, len(monthly))
	for _, m := range monthly {
		d.BookingLabels = append(d.BookingLabels, m.Month.String()[:3])
		d.BookingCounts = append(d.BookingCounts, m.Count)
	}
	d.StatusLabels = make([]string, 0, len(status))
	d.StatusCounts = make([]int64, 0, len(status))
	for _, sc := range status {
		d.StatusLabels = append(d.StatusLabels, capitalize(string(sc.Status)))
		d.StatusCounts = append(d.StatusCounts, sc.Count)
	}
	return d, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
