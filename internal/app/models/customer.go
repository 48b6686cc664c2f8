package models

import (
	"time"
)

// Customer is a participant of SHARE programs
type Customer struct {
	ID                    int64      `json:"id" db:"id" example:"12"`
	UserID                *int64     `json:"userId,omitempty" db:"user_id"`
	FirstName             string     `json:"firstName" db:"first_name" example:"Jo"`
	LastName              string     `json:"lastName" db:"last_name" example:"Citizen"`
	Email                 string     `json:"email" db:"email" example:"jo@example.org"`
	Phone                 *string    `json:"phone,omitempty" db:"phone"`
	DateOfBirth           *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Address               *string    `json:"address,omitempty" db:"address"`
	EmergencyContactName  *string    `json:"emergencyContactName,omitempty" db:"emergency_contact_name"`
	EmergencyContactPhone *string    `json:"emergencyContactPhone,omitempty" db:"emergency_contact_phone"`
	CreditCents           int64      `json:"creditCents" db:"credit_cents" example:"2500"`
	PAQStatus             PAQStatus  `json:"paqStatus" db:"paq_status" example:"APPROVED"`
	PAQExpiresAt          *time.Time `json:"paqExpiresAt,omitempty" db:"paq_expires_at"`
	IsBlocked             bool       `json:"isBlocked" db:"is_blocked"`
	BlockedReason         *string    `json:"blockedReason,omitempty" db:"blocked_reason"`
	CreatedAt             time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt             time.Time  `json:"updatedAt" db:"updated_at"`
}

// FullName joins first and last name
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// HasValidPAQ reports whether the customer may be enrolled at time now
func (c *Customer) HasValidPAQ(now time.Time) bool {
	if c.PAQStatus != PAQStatusApproved {
		return false
	}
	return c.PAQExpiresAt == nil || c.PAQExpiresAt.After(now)
}

// CreditTransaction is one entry in a customer's credit ledger
type CreditTransaction struct {
	ID                int64        `json:"id" db:"id"`
	CustomerID        int64        `json:"customerId" db:"customer_id"`
	AmountCents       int64        `json:"amountCents" db:"amount_cents" example:"-1500"`
	BalanceAfterCents int64        `json:"balanceAfterCents" db:"balance_after_cents" example:"1000"`
	Reason            CreditReason `json:"reason" db:"reason" example:"CANCELLATION_REFUND"`
	Note              string       `json:"note" db:"note"`
	ReferenceID       *int64       `json:"referenceId,omitempty" db:"reference_id"`
	CreatedBy         *int64       `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt         time.Time    `json:"createdAt" db:"created_at"`
}

// CreditChange describes a requested credit movement
type CreditChange struct {
	CustomerID  int64
	AmountCents int64
	Reason      CreditReason
	Note        string
	ReferenceID *int64
	CreatedBy   *int64
}

// Enquiry is a contact form submission from the public site
type Enquiry struct {
	ID         int64         `json:"id" db:"id"`
	Name       string        `json:"name" db:"name"`
	Email      string        `json:"email" db:"email"`
	Phone      string        `json:"phone" db:"phone"`
	Message    string        `json:"message" db:"message"`
	Status     EnquiryStatus `json:"status" db:"status"`
	ResolvedBy *int64        `json:"resolvedBy,omitempty" db:"resolved_by"`
	ResolvedAt *time.Time    `json:"resolvedAt,omitempty" db:"resolved_at"`
	CreatedAt  time.Time     `json:"createdAt" db:"created_at"`
}
