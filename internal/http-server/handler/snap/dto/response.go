package dto

import "time"

type SnapResponse struct {
	ID         string    `json:"id"`
	URL        string    `json:"url,omitempty"`
	Style      string    `json:"style"`
	FrameIndex int       `json:"frame_index"`
	FrameCount int       `json:"frame_count"`
	Favorite   bool      `json:"favorite"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type GenerateResponse struct {
	Snaps []SnapResponse `json:"snaps"`
}

type FavoriteResponse struct {
	ID       string `json:"id"`
	Favorite bool   `json:"favorite"`
}

type StyleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
