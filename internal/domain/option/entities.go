package option

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("insurance option not found")
	ErrDuplicate = errors.New("insurance option with this ID already exists")
)

// Table: insurance_options. Collection: insuranceOptions.
type InsuranceOption struct {
	PK           uint64    `gorm:"column:pk;primaryKey;autoIncrement" bson:"-" json:"-"`
	ID           string    `gorm:"column:id;size:64;uniqueIndex:ux_options_id;not null" bson:"id" json:"id"`
	Name         string    `gorm:"column:name;size:255" bson:"name" json:"name"`
	Value        float64   `gorm:"column:value;type:decimal(24,6)" bson:"value" json:"value"`
	PremiumRate  float64   `gorm:"column:premium_rate;type:decimal(8,4)" bson:"premiumRate" json:"premiumRate"` // percent per year
	Description  string    `gorm:"column:description;type:text" bson:"description" json:"description"`
	TokenAddress string    `gorm:"column:token_address;size:42" bson:"tokenAddress,omitempty" json:"tokenAddress,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" bson:"updatedAt" json:"updatedAt"`
}

func (InsuranceOption) TableName() string { return "insurance_options" }
