package model

import "time"

// Document records one successfully ingested file. The chunk texts and vectors
// themselves live in the vector store, not here.
type Document struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"size:64;not null;index" json:"user_id"`
	Name       string    `gorm:"size:256;not null" json:"name"`
	ChunkCount int       `gorm:"not null" json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
}
