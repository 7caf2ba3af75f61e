package models

import "time"

// Mapping is a single short-code to destination-URL record.
//
// ShortCode carries no uniqueness guarantee: codes are generated at random
// and stored without a collision check, so two mappings can share a code.
type Mapping struct {
	ShortCode string    `db:"short_code" json:"shortCode"`
	URL       string    `db:"url" json:"url"`
	Clicks    int64     `db:"clicks" json:"clicks"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// ShortenRequest is the body accepted by the create and update endpoints.
type ShortenRequest struct {
	URL string `json:"url"`
}

// ShortenResponse is returned by the create endpoint.
type ShortenResponse struct {
	ShortCode string `json:"shortCode"`
	URL       string `json:"url"`
}
