package models

import (
	"time"
)

// Asset is the metadata record for one uploaded image. The binary content
// lives in the blob store under StorageKey; the two stores are kept
// consistent by the upload/delete protocols in the asset service, not by a
// shared transaction.
type Asset struct {
	ID           string    `json:"id" db:"id"`
	OwnerID      string    `json:"owner_id" db:"owner_id"`
	FolderID     string    `json:"folder_id" db:"folder_id"`
	Name         string    `json:"name" db:"name"` // Display name
	StorageKey   string    `json:"storage_key" db:"storage_key"`
	OriginalName string    `json:"original_name" db:"original_name"`
	ContentType  string    `json:"content_type" db:"content_type"`
	ByteSize     int64     `json:"byte_size" db:"byte_size"`
	FolderPath   string    `json:"folder_path,omitempty"` // Joined from the folder row for display
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
