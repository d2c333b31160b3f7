package model

import "time"

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryRef is the compact category representation nested inside
// products and sales.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
