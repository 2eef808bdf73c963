package dto

import "time"

// FileResponse metadatos de un adjunto.
type FileResponse struct {
	ID          string    `json:"id"`
	EntityType  string    `json:"entity_type"`
	EntityID    string    `json:"entity_id"`
	Filename    string    `json:"filename"`
	Mime        string    `json:"mime"`
	Size        int64     `json:"size"`
	DownloadURL string    `json:"download_url"`
	CreatedAt   time.Time `json:"created_at"`
}
