package models

import "time"

// Lead statuses. Transitions are unconstrained; any status may follow any
// other.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusClosed    = "closed"
)

const DefaultLeadSource = "website"

// Lead is an inbound inquiry, optionally tied to a property. The property
// reference is not enforced at read time: a lead survives removal of the
// listing it pointed at.
type Lead struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      string    `gorm:"size:255;not null" json:"email"`
	Phone      string    `gorm:"size:20;not null" json:"phone"`
	Message    string    `gorm:"type:text" json:"message"`
	PropertyID *uint     `gorm:"index" json:"propertyId"`
	Source     string    `gorm:"size:50;default:website" json:"source"`
	Status     string    `gorm:"size:50;default:new;index" json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// LeadInput is the public contact-form payload.
type LeadInput struct {
	Name       string `json:"name" binding:"required,max=255"`
	Email      string `json:"email" binding:"required,email,max=255"`
	Phone      string `json:"phone" binding:"required,max=20"`
	Message    string `json:"message"`
	PropertyID *uint  `json:"propertyId"`
	Source     string `json:"source" binding:"omitempty,max=50"`
}

// UpdateLeadInput is a partial admin update; nil fields are left untouched.
type UpdateLeadInput struct {
	Name       *string `json:"name" binding:"omitempty,max=255"`
	Email      *string `json:"email" binding:"omitempty,email,max=255"`
	Phone      *string `json:"phone" binding:"omitempty,max=20"`
	Message    *string `json:"message"`
	PropertyID *uint   `json:"propertyId"`
	Source     *string `json:"source" binding:"omitempty,max=50"`
	Status     *string `json:"status" binding:"omitempty,oneof=new contacted qualified closed"`
}
