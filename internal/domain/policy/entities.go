package policy

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("policy not found")
	ErrDuplicate = errors.New("policy with this id already exists")
	ErrNotActive = errors.New("policy is not active")
	// ErrNoDocument: the policy was stored without an IPFS document.
	ErrNoDocument = errors.New("policy has no stored document")
	// ErrStatusChanged: a conditional status update found another status.
	ErrStatusChanged = errors.New("policy status was changed by another request")
)

type Status string

const (
	StatusActive  Status = "active"
	StatusClaimed Status = "claimed"
	StatusExpired Status = "expired"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusClaimed, StatusExpired:
		return true
	}
	return false
}

// Table: policies. Collection: policies.
type Policy struct {
	// Internal numeric PK, SQL store only
	PK             uint64    `gorm:"column:pk;primaryKey;autoIncrement" bson:"-" json:"-"`
	ID             string    `gorm:"column:id;size:64;uniqueIndex:ux_policies_id;not null" bson:"id" json:"id"`
	Holder         string    `gorm:"column:holder;size:42;index:idx_policies_holder" bson:"holder" json:"holder"`
	TokenID        string    `gorm:"column:token_id;size:64" bson:"tokenId" json:"tokenId"`
	CoverageAmount float64   `gorm:"column:coverage_amount;type:decimal(24,6)" bson:"coverageAmount" json:"coverageAmount"`
	Premium        float64   `gorm:"column:premium;type:decimal(24,6)" bson:"premium" json:"premium"`
	StartDate      time.Time `gorm:"column:start_date;index:idx_policies_start" bson:"startDate" json:"startDate"`
	EndDate        time.Time `gorm:"column:end_date;index:idx_policies_end" bson:"endDate" json:"endDate"`
	Status         Status    `gorm:"column:status;size:16;index:idx_policies_status" bson:"status" json:"status"`
	IPFSHash       string    `gorm:"column:ipfs_hash;size:128" bson:"ipfsHash,omitempty" json:"ipfsHash,omitempty"`
	Description    string    `gorm:"column:description;type:text" bson:"description,omitempty" json:"description,omitempty"`
	Type           string    `gorm:"column:type;size:64" bson:"type" json:"type"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" bson:"updatedAt" json:"updatedAt"`
}

func (Policy) TableName() string { return "policies" }

// ExpiredAt reports whether the coverage window has closed at t.
func (p *Policy) ExpiredAt(t time.Time) bool {
	return !p.EndDate.IsZero() && p.EndDate.Before(t)
}

type Filter struct {
	Holder string
	Status Status
}
