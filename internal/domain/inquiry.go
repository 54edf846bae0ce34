package domain

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// BookingStatuses lists the statuses in display order.
var BookingStatuses = []BookingStatus{StatusPending, StatusConfirmed, StatusCancelled}

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

type ContactMessage struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// BookingInquiry is a guest request for a stay. It is never confirmed
// automatically; staff move Status by hand.
type BookingInquiry struct {
	ID           int64         `json:"id"`
	PropertyID   int64         `json:"property_id"`
	PropertyName string        `json:"property_name,omitempty"` // read side only
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Phone        string        `json:"phone"`
	Email        string        `json:"email,omitempty"`
	RoomCategory string        `json:"room_category,omitempty"`
	Status       BookingStatus `json:"status"`
	CheckIn      Date          `json:"check_in"`
	CheckOut     Date          `json:"check_out"`
	Guests       int           `json:"guests"`
	Message      string        `json:"message"`
	CreatedAt    time.Time     `json:"created_at"`
}

// MonthCount is one bucket of the monthly bookings chart.
type MonthCount struct {
	Month time.Month
	Count int64
}

type StatusCount struct {
	Status BookingStatus
	Count  int64
}
