package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "PENDING"
	BookingStatusWaiting    BookingStatus = "WAITING"
	BookingStatusConfirmed  BookingStatus = "CONFIRMED"
	BookingStatusAssigned   BookingStatus = "ASSIGNED"
	BookingStatusInProgress BookingStatus = "IN_PROGRESS"
	BookingStatusCompleted  BookingStatus = "COMPLETED"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
)

// IsTerminal reports whether a booking status admits no further transitions.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// Booking is the central transactional entity. CreatedAt is immutable and
// doubles as entropy for the completion PIN.
type Booking struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	CustomerID  uint          `json:"customer_id" gorm:"not null;index"`
	ServiceID   uint          `json:"service_id" gorm:"not null;index"`
	ProviderID  *uint         `json:"provider_id" gorm:"index"` // null until assigned
	Description string        `json:"description" gorm:"type:text"`
	Address     string        `json:"address" gorm:"size:500;not null"`
	Area        string        `json:"area" gorm:"size:255;not null"`
	Date        string        `json:"date" gorm:"size:20;not null"`
	Time        string        `json:"time" gorm:"size:20;not null"`
	Amount      float64       `json:"amount" gorm:"type:decimal(10,2);not null"`
	Status      BookingStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING';check:status IN ('PENDING','WAITING','CONFIRMED','ASSIGNED','IN_PROGRESS','COMPLETED','CANCELLED')"`
	Rating      *int          `json:"rating,omitempty" gorm:"check:rating >= 1 AND rating <= 5"`
	Review      string        `json:"review,omitempty" gorm:"type:text"`
	CreatedAt   time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Customer User      `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Service  Service   `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Provider *Provider `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// BookingCreate is the payload for creating a booking. ProviderID is set
// when the customer books a specific professional from search results.
type BookingCreate struct {
	ServiceID   uint    `json:"service_id" binding:"required"`
	ProviderID  *uint   `json:"provider_id"`
	Description string  `json:"description"`
	Address     string  `json:"address" binding:"required"`
	Area        string  `json:"area" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Time        string  `json:"time" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
}

// BookingRatingCreate is the one-time rating submission for a completed booking.
type BookingRatingCreate struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Review string `json:"review"`
}

// CompletionRequest carries the customer-communicated PIN entered by the
// provider or admin to close out a job.
type CompletionRequest struct {
	Pin string `json:"pin" binding:"required,len=6"`
}
