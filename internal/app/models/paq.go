package models

import "time"

// PAQForm is a submitted pre-activity questionnaire
type PAQForm struct {
	ID                int64           `json:"id" db:"id" example:"31"`
	CustomerID        int64           `json:"customerId" db:"customer_id"`
	Answers           map[string]bool `json:"answers"`
	RequiresClearance bool            `json:"requiresClearance" db:"requires_clearance"`
	CertificateFileID *int64          `json:"certificateFileId,omitempty" db:"certificate_file_id"`
	Status            ReviewStatus    `json:"status" db:"status" example:"PENDING"`
	ReviewNotes       string          `json:"reviewNotes" db:"review_notes"`
	ReviewedBy        *int64          `json:"reviewedBy,omitempty" db:"reviewed_by"`
	ReviewedAt        *time.Time      `json:"reviewedAt,omitempty" db:"reviewed_at"`
	ExpiresAt         *time.Time      `json:"expiresAt,omitempty" db:"expires_at"`
	SubmittedAt       time.Time       `json:"submittedAt" db:"submitted_at"`

	CustomerName   string `json:"customerName,omitempty"`
	CertificateURL string `json:"certificateUrl,omitempty"`
}

// PAQQuestion is one screening question
type PAQQuestion struct {
	Code string `json:"code" example:"heart_condition"`
	Text string `json:"text"`
}
