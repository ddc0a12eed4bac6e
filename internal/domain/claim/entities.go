package claim

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("claim not found")
	ErrDuplicate         = errors.New("claim with this id already exists")
	ErrInvalidTransition = errors.New("claim not in a state that allows this transition")
	ErrReasonRequired    = errors.New("rejection reason is required")
	ErrStatusChanged     = errors.New("claim status was changed by another request")
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "underReview"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusPaid        Status = "paid"
)

// transitions lists the allowed targets from each state.
var transitions = map[Status][]Status{
	StatusPending:     {StatusUnderReview, StatusApproved, StatusRejected},
	StatusUnderReview: {StatusApproved, StatusRejected},
	StatusApproved:    {StatusPaid},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected, StatusPaid:
		return true
	}
	return false
}

func (s Status) Terminal() bool { return len(transitions[s]) == 0 }

func (s Status) CanTransitionTo(to Status) bool {
	for _, t := range transitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// Table: claims. Collection: claims.
type Claim struct {
	PK              uint64     `gorm:"column:pk;primaryKey;autoIncrement" bson:"-" json:"-"`
	ID              string     `gorm:"column:id;size:64;uniqueIndex:ux_claims_id;not null" bson:"id" json:"id"`
	PolicyID        string     `gorm:"column:policy_id;size:64;index:idx_claims_policy" bson:"policyId" json:"policyId"`
	Claimant        string     `gorm:"column:claimant;size:42" bson:"claimant,omitempty" json:"claimant,omitempty"`
	Amount          float64    `gorm:"column:amount;type:decimal(24,6)" bson:"amount" json:"amount"`
	Status          Status     `gorm:"column:status;size:16;index:idx_claims_status" bson:"status" json:"status"`
	Timestamp       time.Time  `gorm:"column:timestamp;index:idx_claims_timestamp" bson:"timestamp" json:"timestamp"`
	Description     string     `gorm:"column:description;type:text" bson:"description" json:"description"`
	Evidence        string     `gorm:"column:evidence;size:128" bson:"evidence,omitempty" json:"evidence,omitempty"`
	ProcessedBy     string     `gorm:"column:processed_by;size:42" bson:"processedBy,omitempty" json:"processedBy,omitempty"`
	ProcessedAt     *time.Time `gorm:"column:processed_at" bson:"processedAt,omitempty" json:"processedAt,omitempty"`
	RejectionReason string     `gorm:"column:rejection_reason;type:text" bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime" bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime" bson:"updatedAt" json:"updatedAt"`
}

func (Claim) TableName() string { return "claims" }

// Transition moves the claim to the target state and stamps the actor.
// underReview only records the actor; decisions also stamp processedAt.
func (c *Claim) Transition(to Status, actor, reason string, at time.Time) error {
	if !c.Status.CanTransitionTo(to) {
		return ErrInvalidTransition
	}
	if to == StatusRejected && reason == "" {
		return ErrReasonRequired
	}
	c.Status = to
	c.ProcessedBy = actor
	if to != StatusUnderReview {
		t := at.UTC()
		c.ProcessedAt = &t
	}
	if to == StatusRejected {
		c.RejectionReason = reason
	}
	c.UpdatedAt = at.UTC()
	return nil
}

type Filter struct {
	PolicyID string
	Status   Status
}

// Event is emitted whenever a claim is created or changes state.
type Event struct {
	ClaimID  string    `json:"claimId"`
	PolicyID string    `json:"policyId"`
	Status   Status    `json:"status"`
	Actor    string    `json:"actor,omitempty"`
	At       time.Time `json:"at"`
}
