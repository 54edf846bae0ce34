package domain

import "time"

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	IsStaff      bool
	IsActive     bool
	CreatedAt    time.Time
}

type Flash struct {
	Level string `json:"level"` // success|error|info
	Text  string `json:"text"`
}

// Session is the server-side half of the session cookie. UserID is zero for
// anonymous visitors, whose sessions only carry flash notices.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id,omitempty"`
	Username  string    `json:"username,omitempty"`
	IsStaff   bool      `json:"is_staff,omitempty"`
	Flashes   []Flash   `json:"flashes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (s Session) Authenticated() bool { return s.UserID != 0 }
