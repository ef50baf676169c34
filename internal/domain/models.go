package domain

import (
	"time"
)

// LinkRecord represents a shortened SMS deep link with its click tracking metadata
type LinkRecord struct {
	ShortID       string     `json:"shortId"`
	Recipient     string     `json:"recipient"`
	Message       string     `json:"message"`
	DeepLink      string     `json:"deepLink"`
	ShortURL      string     `json:"shortUrl"`
	ClickCount    int64      `json:"clickCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	LastClickedAt *time.Time `json:"lastClickedAt,omitempty"`
}

// Clone returns a copy of the record so callers cannot mutate stored state
func (r *LinkRecord) Clone() *LinkRecord {
	clone := *r
	if r.LastClickedAt != nil {
		t := *r.LastClickedAt
		clone.LastClickedAt = &t
	}
	return &clone
}

// CreateLinkRequest represents the request to create a short SMS link
type CreateLinkRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// StatusResponse represents the service status view
type StatusResponse struct {
	TotalLinks int64 `json:"totalLinks"`
}
