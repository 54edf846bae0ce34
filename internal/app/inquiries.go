package app

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"liok_hotels/internal/domain"
)

// ErrSubmissionFailed hides storage failures from visitors.
var ErrSubmissionFailed = errors.New("submission could not be saved")

// SubmissionObserver is told the outcome of every public submission.
type SubmissionObserver func(kind, outcome string)

type InquiryService struct {
	contacts   domain.ContactRepository
	bookings   domain.BookingRepository
	properties domain.PropertyRepository
	observe    SubmissionObserver
	now        func() time.Time
}

func NewInquiryService(r domain.Repositories, observe SubmissionObserver) *InquiryService {
	if observe == nil {
		observe = func(string, string) {}
	}
	return &InquiryService{
		contacts: r.Contacts, bookings: r.Bookings, properties: r.Properties,
		observe: observe, now: utcNow,
	}
}

type ContactInput struct {
	FirstName string `form:"first_name" json:"first_name" validate:"required,max=100"`
	LastName  string `form:"last_name" json:"last_name" validate:"required,max=100"`
	Phone     string `form:"phone" json:"phone" validate:"required,max=20"`
	Email     string `form:"email" json:"email" validate:"omitempty,email,max=254"`
	Message   string `form:"message" json:"message"`
}

type BookingInput struct {
	FirstName    string `form:"first_name" json:"first_name" validate:"required,max=100"`
	LastName     string `form:"last_name" json:"last_name" validate:"required,max=100"`
	Phone        string `form:"phone" json:"phone" validate:"required,max=20"`
	Email        string `form:"email" json:"email" validate:"omitempty,email,max=254"`
	Property     string `form:"property" json:"property" validate:"required"`
	RoomCategory string `form:"room_category" json:"room_category" validate:"max=100"`
	CheckIn      string `form:"check_in" json:"check_in" validate:"required"`
	CheckOut     string `form:"check_out" json:"check_out" validate:"required"`
	Guests       string `form:"guests" json:"guests"`
	Message      string `form:"message" json:"message"`
}

const defaultGuests = 2

func (s *InquiryService) SubmitContact(ctx context.Context, in ContactInput) (domain.ContactMessage, error) {
	trim(&in.FirstName, &in.LastName, &in.Phone, &in.Email, &in.Message)
	if err := invalid(check(&in)); err != nil {
		s.observe("contact", "invalid")
		return domain.ContactMessage{}, err
	}
	m := domain.ContactMessage{
		FirstName: in.FirstName, LastName: in.LastName, Phone: in.Phone,
		Email: in.Email, Message: in.Message, CreatedAt: s.now(),
	}
	if err := s.contacts.Create(ctx, &m); err != nil {
		log.Error().Err(err).Msg("contact submission")
		s.observe("contact", "failed")
		return domain.ContactMessage{}, ErrSubmissionFailed
	}
	s.observe("contact", "ok")
	return m, nil
}

func (s *InquiryService) SubmitBooking(ctx context.Context, in BookingInput) (domain.BookingInquiry, error) {
	trim(&in.FirstName, &in.LastName, &in.Phone, &in.Email, &in.Property,
		&in.RoomCategory, &in.CheckIn, &in.CheckOut, &in.Guests, &in.Message)
	fe := check(&in)

	b := domain.BookingInquiry{
		FirstName: in.FirstName, LastName: in.LastName, Phone: in.Phone, Email: in.Email,
		RoomCategory: in.RoomCategory, Message: in.Message,
		Status: domain.StatusPending, Guests: defaultGuests,
	}
	if in.Property != "" {
		b.PropertyID, b.PropertyName = s.bookingProperty(ctx, in.Property, fe)
	}
	var err error
	if in.CheckIn != "" {
		if b.CheckIn, err = domain.ParseDate(in.CheckIn); err != nil {
			fe.add("check_in", msgDate)
		}
	}
	if in.CheckOut != "" {
		if b.CheckOut, err = domain.ParseDate(in.CheckOut); err != nil {
			fe.add("check_out", msgDate)
		}
	}
	if in.Guests != "" {
		if b.Guests, err = strconv.Atoi(in.Guests); err != nil {
			fe.add("guests", "Enter a whole number.")
		}
	}
	if err := invalid(fe); err != nil {
		s.observe("booking", "invalid")
		return domain.BookingInquiry{}, err
	}

	b.CreatedAt = s.now()
	if err := s.bookings.Create(ctx, &b); err != nil {
		log.Error().Err(err).Int64("property_id", b.PropertyID).Msg("booking submission")
		s.observe("booking", "failed")
		return domain.BookingInquiry{}, ErrSubmissionFailed
	}
	s.observe("booking", "ok")
	return b, nil
}

const msgDate = "Enter a valid date."

func (s *InquiryService) bookingProperty(ctx context.Context, raw string, fe FieldErrors) (int64, string) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fe.add("property", msgChoice)
		return 0, ""
	}
	p, err := s.properties.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Error().Err(err).Int64("property_id", id).Msg("booking property lookup")
		}
		fe.add("property", msgChoice)
		return 0, ""
	}
	return p.ID, p.Name
}

// ---- admin review ----

func (s *InquiryService) ListBookings(ctx context.Context, page string) (Page[domain.BookingInquiry], error) {
	rows, err := s.bookings.List(ctx)
	if err != nil {
		return Page[domain.BookingInquiry]{}, err
	}
	return Paginate(rows, page, BookingsPerPage), nil
}

func (s *InquiryService) GetBooking(ctx context.Context, id int64) (domain.BookingInquiry, error) {
	return s.bookings.Get(ctx, id)
}

// SetBookingStatus is the only way a booking leaves pending.
func (s *InquiryService) SetBookingStatus(ctx context.Context, id int64, status string) (domain.BookingInquiry, error) {
	b, err := s.bookings.Get(ctx, id)
	if err != nil {
		return domain.BookingInquiry{}, err
	}
	st := domain.BookingStatus(status)
	if !st.Valid() {
		return domain.BookingInquiry{}, &ValidationError{Fields: FieldErrors{"status": msgChoice}}
	}
	if err := s.bookings.UpdateStatus(ctx, id, st); err != nil {
		return domain.BookingInquiry{}, err
	}
	b.Status = st
	return b, nil
}

func (s *InquiryService) DeleteBooking(ctx context.Context, id int64) error {
	if _, err := s.bookings.Get(ctx, id); err != nil {
		return err
	}
	return s.bookings.Delete(ctx, id)
}

func (s *InquiryService) ListContacts(ctx context.Context, page string) (Page[domain.ContactMessage], error) {
	rows, err := s.contacts.List(ctx)
	if err != nil {
		return Page[domain.ContactMessage]{}, err
	}
	return Paginate(rows, page, ContactsPerPage), nil
}

func (s *InquiryService) GetContact(ctx context.Context, id int64) (domain.ContactMessage, error) {
	return s.contacts.Get(ctx, id)
}

func (s *InquiryService) DeleteContact(ctx context.Context, id int64) error {
	if _, err := s.contacts.Get(ctx, id); err != nil {
		return err
	}
	return s.contacts.Delete(ctx, id)
}
