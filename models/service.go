package models

import (
	"time"
)

// Service is a bookable category. Its name doubles as the matching key
// against Provider.Skill (a string convention, no foreign key).
type Service struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	BasePrice   float64   `json:"base_price" gorm:"type:decimal(10,2);not null"`
	MaxPrice    *float64  `json:"max_price,omitempty" gorm:"type:decimal(10,2)"`
	Icon        string    `json:"icon" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}

// ServiceRequest is the payload for creating or updating a service.
type ServiceRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=100"`
	Description string   `json:"description"`
	BasePrice   float64  `json:"base_price" binding:"required,gt=0"`
	MaxPrice    *float64 `json:"max_price"`
	Icon        string   `json:"icon"`
}
