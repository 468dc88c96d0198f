package models

import (
	"time"
)

// ApprovalStatus is the admin onboarding state of a provider. Newly
// registered providers stay PENDING and are invisible to matching
// until an admin flips them ACTIVE.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalActive   ApprovalStatus = "ACTIVE"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// Provider is a service professional. Skill matches Service.Name by string
// equality; Area is matched by case-insensitive substring.
type Provider struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	UserID         uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	Skill          string         `json:"skill" gorm:"size:100;not null"`
	Area           string         `json:"area" gorm:"size:255;not null"`
	Rating         float64        `json:"rating" gorm:"type:decimal(3,1);default:0"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	ApprovalStatus ApprovalStatus `json:"approval_status" gorm:"type:varchar(20);default:'PENDING';check:approval_status IN ('PENDING','ACTIVE','REJECTED')"`
	IsDeleted      bool           `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt      time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the Provider model
func (Provider) TableName() string {
	return "providers"
}

// Approved treats a missing approval status as ACTIVE so rows written by
// deployments without the column stay matchable.
func (p *Provider) Approved() bool {
	return p.ApprovalStatus == ApprovalActive || p.ApprovalStatus == ""
}

// ProviderRequest is the payload for provider onboarding (self-registration
// or admin provisioning).
type ProviderRequest struct {
	Skill string `json:"skill" binding:"required,min=2,max=100"`
	Area  string `json:"area" binding:"required,min=2,max=255"`
}

// ProviderApprovalRequest updates a provider's onboarding decision.
type ProviderApprovalRequest struct {
	ApprovalStatus ApprovalStatus `json:"approval_status" binding:"required,oneof=PENDING ACTIVE REJECTED"`
}
