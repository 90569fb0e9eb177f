package domain

import "time"

// ReportStatus enumerates moderation states for a report. Transitions out of
// pending are owned by the moderation backend, not this service.
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "pending"
	ReportStatusVerified   ReportStatus = "verified"
	ReportStatusEliminated ReportStatus = "eliminated"
)

// Location pins a report to a point on the map.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// Valid reports whether the coordinates are within range.
func (l Location) Valid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// MosquitoReport is a citizen-submitted record of a suspected Aedes aegypti
// breeding site. UserID and UserName are frozen at creation time: they record
// who reported the site then, and are never updated afterwards.
type MosquitoReport struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	UserName    string       `json:"user_name"`
	Location    Location     `json:"location"`
	Description string       `json:"description"`
	ImageURL    string       `json:"image_url,omitempty"`
	Status      ReportStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
}
