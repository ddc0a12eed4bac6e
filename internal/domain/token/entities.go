package token

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound  = errors.New("token not found")
	ErrDuplicate = errors.New("token with this symbol or address already exists")
)

// Table: tokens. Collection: tokens.
type Token struct {
	PK          uint64    `gorm:"column:pk;primaryKey;autoIncrement" bson:"-" json:"-"`
	Symbol      string    `gorm:"column:symbol;size:32;uniqueIndex:ux_tokens_symbol;not null" bson:"symbol" json:"symbol"`
	Name        string    `gorm:"column:name;size:255" bson:"name" json:"name"`
	Address     string    `gorm:"column:address;size:42;uniqueIndex:ux_tokens_address;not null" bson:"address" json:"address"`
	Decimals    uint8     `gorm:"column:decimals" bson:"decimals" json:"decimals"`
	Category    string    `gorm:"column:category;size:64;index:idx_tokens_category" bson:"category,omitempty" json:"category,omitempty"`
	Description string    `gorm:"column:description;type:text" bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" bson:"createdAt" json:"-"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" bson:"updatedAt" json:"-"`
}

func (Token) TableName() string { return "tokens" }

// IsAddressIdentifier reports whether a lookup key names an address rather than a symbol.
func IsAddressIdentifier(identifier string) bool {
	return strings.HasPrefix(identifier, "0x") || strings.HasPrefix(identifier, "0X")
}
