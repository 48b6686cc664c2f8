package models

import "time"

// File is the database record of a stored upload
type File struct {
	ID          int64     `json:"id" db:"id"`
	StorageKey  string    `json:"-" db:"storage_key"`
	FileName    string    `json:"fileName" db:"file_name" example:"clearance.pdf"`
	ContentType string    `json:"contentType" db:"content_type" example:"application/pdf"`
	SizeBytes   int64     `json:"sizeBytes" db:"size_bytes"`
	UploadedBy  *int64    `json:"uploadedBy,omitempty" db:"uploaded_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
