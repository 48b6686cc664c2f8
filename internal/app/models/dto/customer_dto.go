package dto

import "github.com/sharecrm/share/internal/app/models"

// CustomerRequest is the admin create/update body for a customer
type CustomerRequest struct {
	FirstName             string  `json:"firstName" binding:"required,max=100" example:"Jo"`
	LastName              string  `json:"lastName" binding:"required,max=100" example:"Citizen"`
	Email                 string  `json:"email" binding:"required,email" example:"jo@example.org"`
	Phone                 *string `json:"phone,omitempty" binding:"omitempty,max=50"`
	DateOfBirth           *string `json:"dateOfBirth,omitempty" binding:"omitempty,datetime=2006-01-02" example:"1950-06-30"`
	Address               *string `json:"address,omitempty" binding:"omitempty,max=500"`
	EmergencyContactName  *string `json:"emergencyContactName,omitempty" binding:"omitempty,max=200"`
	EmergencyContactPhone *string `json:"emergencyContactPhone,omitempty" binding:"omitempty,max=50"`
}

// ProfileRequest is what a customer may change about themselves
type ProfileRequest struct {
	Phone                 *string `json:"phone,omitempty" binding:"omitempty,max=50"`
	DateOfBirth           *string `json:"dateOfBirth,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Address               *string `json:"address,omitempty" binding:"omitempty,max=500"`
	EmergencyContactName  *string `json:"emergencyContactName,omitempty" binding:"omitempty,max=200"`
	EmergencyContactPhone *string `json:"emergencyContactPhone,omitempty" binding:"omitempty,max=50"`
}

// BlockCustomerRequest records why a customer is blocked
type BlockCustomerRequest struct {
	Reason string `json:"reason" binding:"required,max=500" example:"Repeated no-shows"`
}

// CreditAdjustmentRequest moves a customer's credit up or down
type CreditAdjustmentRequest struct {
	AmountCents int64  `json:"amountCents" binding:"required" example:"1500"`
	Note        string `json:"note" binding:"required,max=500" example:"Goodwill credit"`
}

// CreditSummaryResponse is a customer's balance and ledger
type CreditSummaryResponse struct {
	CustomerID   int64                       `json:"customerId"`
	BalanceCents int64                       `json:"balanceCents" example:"2500"`
	Transactions []*models.CreditTransaction `json:"transactions"`
}

// CustomerFilter narrows the admin customer list
type CustomerFilter struct {
	ListFilter
	Blocked *bool
}
