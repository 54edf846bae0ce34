package domain

import (
	"strings"
	"time"
)

type Property struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Overview       string    `json:"overview"`
	Address        string    `json:"address"`
	MapEmbedCode   string    `json:"map_embed_code"`
	WhatsAppNumber string    `json:"whatsapp_number"`
	ContactPhone   string    `json:"contact_phone"`
	CoverImage     string    `json:"cover_image"`
	Amenities      string    `json:"amenities_list"` // comma separated, as typed by staff
	CreatedAt      time.Time `json:"created_at"`
}

// AmenityList splits the comma separated amenities, dropping blanks.
func (p Property) AmenityList() []string {
	out := []string{}
	for _, a := range strings.Split(p.Amenities, ",") {
		if t := strings.TrimSpace(a); t != "" {
			out = append(out, t)
		}
	}
	return out
}

type RoomCategory struct {
	ID            int64  `json:"id"`
	PropertyID    int64  `json:"property_id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	PricePerNight Price  `json:"price_per_night"`
	MaxOccupancy  int    `json:"max_occupancy"`
	Image         string `json:"image"`
}

type NearbyLocation struct {
	ID          int64  `json:"id"`
	PropertyID  int64  `json:"property_id"`
	Name        string `json:"name"`
	Distance    string `json:"distance"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}
